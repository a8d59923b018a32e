package onboarding

import (
	"strings"

	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/utils"
)

// 字段校验提示
const (
	MsgEmailInvalid    = "Please enter a valid email address"
	MsgEmailTaken      = "Email already exists. Please use a different email or login."
	MsgPasswordShort   = "Password must be at least 6 characters"
	MsgNameShort       = "Name must be at least 2 characters"
	MsgNameInvalid     = "Name can only contain letters and spaces"
	MsgMobileInvalid   = "Please enter a valid 10-digit mobile number"
	MsgBusinessMissing = "Please choose a business category"
	MsgServicesEmpty   = "Please select at least one service"
	MsgCityShort       = "City must be at least 2 characters"
	MsgStateShort      = "State must be at least 2 characters"
	MsgPincodeInvalid  = "Pincode must be 6 digits"
)

const minPasswordLength = 6

// Credentials 第一步输入
type Credentials struct {
	Email    string
	Password string
}

func (c Credentials) Validate() error {
	errs := pkgerrors.FieldErrors{}
	if !utils.ValidateEmail(c.Email) {
		errs.Add(string(FieldEmail), MsgEmailInvalid)
	}
	if len(c.Password) < minPasswordLength {
		errs.Add(string(FieldPassword), MsgPasswordShort)
	}
	return orNil(errs)
}

// Contact 第二步输入
type Contact struct {
	FullName string
	Mobile   string
}

func (c Contact) Validate() error {
	errs := pkgerrors.FieldErrors{}
	if msg := nameMessage(c.FullName); msg != "" {
		errs.Add(string(FieldFullName), msg)
	}
	if !utils.ValidateMobile(utils.DigitsOnly(c.Mobile)) {
		errs.Add(string(FieldMobile), MsgMobileInvalid)
	}
	return orNil(errs)
}

// nameMessage 与服务端注册校验一致：只允许英文字母和空格
func nameMessage(name string) string {
	switch {
	case !utils.MinTrimmedLength(name, 2):
		return MsgNameShort
	case !utils.ValidateFullName(name):
		return MsgNameInvalid
	}
	return ""
}

// normalized 去掉姓名首尾空白，手机号只留数字
func (c Contact) normalized() Contact {
	return Contact{
		FullName: strings.TrimSpace(c.FullName),
		Mobile:   utils.DigitsOnly(c.Mobile),
	}
}

// Category 第三步输入
type Category struct {
	Business string
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Business) == "" {
		return pkgerrors.FieldErrors{string(FieldBusiness): MsgBusinessMissing}
	}
	return nil
}

// ServiceSelection 第四步输入
type ServiceSelection struct {
	Services []string
}

// Validate 至少有一项非空白的服务
func (s ServiceSelection) Validate() error {
	for _, service := range s.Services {
		if strings.TrimSpace(service) != "" {
			return nil
		}
	}
	return pkgerrors.FieldErrors{string(FieldServices): MsgServicesEmpty}
}

// Location 第五步输入
type Location struct {
	City    string
	State   string
	Pincode string
}

func (l Location) Validate() error {
	errs := pkgerrors.FieldErrors{}
	if !utils.MinTrimmedLength(l.City, 2) {
		errs.Add(string(FieldCity), MsgCityShort)
	}
	if !utils.MinTrimmedLength(l.State, 2) {
		errs.Add(string(FieldState), MsgStateShort)
	}
	if !utils.ValidatePincode(l.Pincode) {
		errs.Add(string(FieldPincode), MsgPincodeInvalid)
	}
	return orNil(errs)
}

// String 形如 "Pune, MH - 411001"
func (l Location) String() string {
	return strings.TrimSpace(l.City) + ", " + strings.TrimSpace(l.State) + " - " + l.Pincode
}

func orNil(errs pkgerrors.FieldErrors) error {
	if errs.Empty() {
		return nil
	}
	return errs
}

// validateField 单字段校验，用于失焦提示；空值不提示
func validateField(form Form, field Field) string {
	switch field {
	case FieldEmail:
		if form.Email != "" && !utils.ValidateEmail(form.Email) {
			return MsgEmailInvalid
		}
	case FieldPassword:
		if form.Password != "" && len(form.Password) < minPasswordLength {
			return MsgPasswordShort
		}
	case FieldFullName:
		if form.FullName != "" {
			return nameMessage(form.FullName)
		}
	case FieldMobile:
		if form.Mobile != "" && !utils.ValidateMobile(utils.DigitsOnly(form.Mobile)) {
			return MsgMobileInvalid
		}
	case FieldCity:
		if form.City != "" && !utils.MinTrimmedLength(form.City, 2) {
			return MsgCityShort
		}
	case FieldState:
		if form.State != "" && !utils.MinTrimmedLength(form.State, 2) {
			return MsgStateShort
		}
	case FieldPincode:
		if form.Pincode != "" && !utils.ValidatePincode(form.Pincode) {
			return MsgPincodeInvalid
		}
	}
	return ""
}
