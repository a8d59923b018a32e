package onboarding

import (
	"strings"

	"VendorHub/internal/localstore"
	"VendorHub/internal/model"
	"VendorHub/internal/model/dto"
)

// Stage 引导流程当前所处阶段。每个实现只携带此前步骤已校验过的数据，
// 例如 ServicesStage 一定带有已选择的职业类别。
type Stage interface {
	Step() Step
	stage()
}

// CredentialsStage 第一步：邮箱和密码
type CredentialsStage struct{}

// ContactStage 第二步：姓名和手机号
type ContactStage struct {
	credentials Credentials
}

// CategoryStage 第三步：职业类别
type CategoryStage struct {
	credentials Credentials
	contact     Contact
}

// ServicesStage 第四步：服务项
type ServicesStage struct {
	credentials Credentials
	contact     Contact
	category    Category
}

// LocationStage 第五步：城市、省份、邮编，完成后提交注册
type LocationStage struct {
	credentials Credentials
	contact     Contact
	category    Category
	services    ServiceSelection
}

func (CredentialsStage) Step() Step { return StepCredentials }
func (ContactStage) Step() Step     { return StepContact }
func (CategoryStage) Step() Step    { return StepCategory }
func (ServicesStage) Step() Step    { return StepServices }
func (LocationStage) Step() Step    { return StepLocation }

func (CredentialsStage) stage() {}
func (ContactStage) stage()     {}
func (CategoryStage) stage()    {}
func (ServicesStage) stage()    {}
func (LocationStage) stage()    {}

// Start 流程起点
func Start() CredentialsStage {
	return CredentialsStage{}
}

func (s CredentialsStage) Next(in Credentials) (ContactStage, error) {
	if err := in.Validate(); err != nil {
		return ContactStage{}, newValidationError(StepCredentials, err)
	}
	return ContactStage{credentials: in}, nil
}

func (s ContactStage) Next(in Contact) (CategoryStage, error) {
	if err := in.Validate(); err != nil {
		return CategoryStage{}, newValidationError(StepContact, err)
	}
	return CategoryStage{credentials: s.credentials, contact: in.normalized()}, nil
}

func (s ContactStage) Back() CredentialsStage {
	return CredentialsStage{}
}

func (s CategoryStage) Next(in Category) (ServicesStage, error) {
	if err := in.Validate(); err != nil {
		return ServicesStage{}, newValidationError(StepCategory, err)
	}
	in.Business = strings.TrimSpace(in.Business)
	return ServicesStage{credentials: s.credentials, contact: s.contact, category: in}, nil
}

func (s CategoryStage) Back() ContactStage {
	return ContactStage{credentials: s.credentials}
}

func (s ServicesStage) Next(in ServiceSelection) (LocationStage, error) {
	if err := in.Validate(); err != nil {
		return LocationStage{}, newValidationError(StepServices, err)
	}
	in.Services = append([]string(nil), in.Services...)
	return LocationStage{
		credentials: s.credentials,
		contact:     s.contact,
		category:    s.category,
		services:    in,
	}, nil
}

func (s ServicesStage) Back() CategoryStage {
	return CategoryStage{credentials: s.credentials, contact: s.contact}
}

// Business 已选择的职业类别
func (s ServicesStage) Business() string {
	return s.category.Business
}

// Complete 校验最后一步并生成注册申请
func (s LocationStage) Complete(in Location) (Application, error) {
	if err := in.Validate(); err != nil {
		return Application{}, newValidationError(StepLocation, err)
	}
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	return Application{
		Credentials: s.credentials,
		Contact:     s.contact,
		Category:    s.category,
		Services:    s.services,
		Location:    in,
	}, nil
}

func (s LocationStage) Back() ServicesStage {
	return ServicesStage{credentials: s.credentials, contact: s.contact, category: s.category}
}

// Application 五步全部通过校验后的注册申请
type Application struct {
	Credentials Credentials
	Contact     Contact
	Category    Category
	Services    ServiceSelection
	Location    Location
}

// Request 转换为注册接口请求体，经验等级固定为 Intermediate
func (a Application) Request() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:           a.Credentials.Email,
		Password:        a.Credentials.Password,
		FullName:        a.Contact.FullName,
		Mobile:          a.Contact.Mobile,
		Business:        a.Category.Business,
		ExperienceLevel: string(model.ExperienceIntermediate),
		Location:        a.Location.String(),
		City:            a.Location.City,
		State:           a.Location.State,
		Pincode:         a.Location.Pincode,
		Services:        strings.Join(a.Services.Services, ","),
	}
}

// Record 本地保存的引导快照
func (a Application) Record() localstore.OnboardingRecord {
	return localstore.OnboardingRecord{
		Email:    a.Credentials.Email,
		FullName: a.Contact.FullName,
		Mobile:   a.Contact.Mobile,
		Business: a.Category.Business,
		Services: append([]string(nil), a.Services.Services...),
		City:     a.Location.City,
		State:    a.Location.State,
		Pincode:  a.Location.Pincode,
		Location: a.Location.String(),
	}
}
