// Package onboarding 商家入驻引导流程：五个线性步骤，最后一步提交注册
package onboarding

import "fmt"

// Step 引导步骤，取值 1..5
type Step int

const (
	StepCredentials Step = iota + 1
	StepContact
	StepCategory
	StepServices
	StepLocation
)

const (
	FirstStep = StepCredentials
	LastStep  = StepLocation
)

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) String() string {
	switch s {
	case StepCredentials:
		return "credentials"
	case StepContact:
		return "contact"
	case StepCategory:
		return "category"
	case StepServices:
		return "services"
	case StepLocation:
		return "location"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Field 表单字段名，同时作为错误 map 的 key
type Field string

const (
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
	FieldFullName Field = "fullName"
	FieldMobile   Field = "mobile"
	FieldBusiness Field = "business"
	FieldServices Field = "services"
	FieldCity     Field = "city"
	FieldState    Field = "state"
	FieldPincode  Field = "pincode"
)

var stepFields = map[Step][]Field{
	StepCredentials: {FieldEmail, FieldPassword},
	StepContact:     {FieldFullName, FieldMobile},
	StepCategory:    {FieldBusiness},
	StepServices:    {FieldServices},
	StepLocation:    {FieldCity, FieldState, FieldPincode},
}

// Step 字段所属步骤，未知字段返回 0
func (f Field) Step() Step {
	for step, fields := range stepFields {
		for _, candidate := range fields {
			if candidate == f {
				return step
			}
		}
	}
	return 0
}

// Fields 该步骤包含的字段
func (s Step) Fields() []Field {
	return append([]Field(nil), stepFields[s]...)
}
