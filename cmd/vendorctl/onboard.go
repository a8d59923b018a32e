package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"VendorHub/internal/model"
	"VendorHub/internal/onboarding"
)

var errQuit = errors.New("vendorctl: quit")

// runOnboard 逐步驱动引导流程直到注册完成；输入结束或 :quit 时退出
func runOnboard(ctx context.Context, ctl *onboarding.Controller, con *console) error {
	con.printf("Vendor onboarding. Type %s to go back, %s to exit.\n", cmdBack, cmdQuit)

	for {
		st := ctl.State()
		if st.Completed {
			printResult(con, ctl)
			return nil
		}

		con.printf("\nStep %d of %d: %s\n", int(st.Step), int(onboarding.LastStep), st.Step)
		err := promptStep(ctx, ctl, con, st)
		switch {
		case err == nil:
		case errors.Is(err, errBack):
			if err := ctl.Retreat(); err != nil {
				return err
			}
		case errors.Is(err, errQuit), errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, onboarding.ErrStepInvalid):
			printFieldErrors(con, ctl.Errors())
		case errors.Is(err, onboarding.ErrEmailTaken):
			con.printf("  email: %s\n", onboarding.MsgEmailTaken)
		case errors.Is(err, onboarding.ErrUnknownService), errors.Is(err, onboarding.ErrBlankService):
			con.printf("  %v\n", err)
		default:
			var serr *onboarding.SubmitError
			if errors.As(err, &serr) {
				// 失败原因已经由 notifier 输出，停留在最后一步重试
				continue
			}
			if ctl.Completed() {
				continue
			}
			return err
		}
	}
}

var errBack = errors.New("vendorctl: back")

// read 读取一行并识别控制指令
func read(con *console, label, current string) (string, error) {
	value, err := con.ask(label, current)
	if err != nil {
		return "", err
	}
	switch strings.TrimSpace(value) {
	case cmdBack:
		return "", errBack
	case cmdQuit:
		return "", errQuit
	}
	return value, nil
}

func promptStep(ctx context.Context, ctl *onboarding.Controller, con *console, st onboarding.State) error {
	f := st.Form
	switch st.Step {
	case onboarding.StepCredentials:
		email, err := read(con, "Email", f.Email)
		if err != nil {
			return err
		}
		if err := ctl.Set(onboarding.FieldEmail, email); err != nil {
			return err
		}
		pw, err := read(con, "Password", "")
		if err != nil {
			return err
		}
		if pw == "" {
			pw = f.Password
		}
		return ctl.Advance(ctx, onboarding.FieldPassword, pw)

	case onboarding.StepContact:
		name, err := read(con, "Full name", f.FullName)
		if err != nil {
			return err
		}
		if err := ctl.Set(onboarding.FieldFullName, name); err != nil {
			return err
		}
		mobile, err := read(con, "Mobile (10 digits)", f.Mobile)
		if err != nil {
			return err
		}
		return ctl.Advance(ctx, onboarding.FieldMobile, mobile)

	case onboarding.StepCategory:
		for i, p := range model.Professions {
			con.printf("  %d) %s\n", i+1, p.Label)
		}
		choice, err := read(con, "Business", f.Business)
		if err != nil {
			return err
		}
		return ctl.Advance(ctx, onboarding.FieldBusiness, pick(choice, model.ProfessionLabels()))

	case onboarding.StepServices:
		return promptServices(ctx, ctl, con, f)

	case onboarding.StepLocation:
		city, err := read(con, "City", f.City)
		if err != nil {
			return err
		}
		if err := ctl.Set(onboarding.FieldCity, city); err != nil {
			return err
		}
		state, err := read(con, "State", f.State)
		if err != nil {
			return err
		}
		if err := ctl.Set(onboarding.FieldState, state); err != nil {
			return err
		}
		pincode, err := read(con, "Pincode (6 digits)", f.Pincode)
		if err != nil {
			return err
		}
		return ctl.Advance(ctx, onboarding.FieldPincode, pincode)
	}
	return fmt.Errorf("vendorctl: unexpected step %s", st.Step)
}

// promptServices 输入逗号分隔的编号切换勾选，直接回车提交当前选择
func promptServices(ctx context.Context, ctl *onboarding.Controller, con *console, f onboarding.Form) error {
	profession, ok := model.FindProfession(f.Business)
	if !ok {
		input, err := read(con, "Services (comma separated)", strings.Join(f.Services, ", "))
		if err != nil {
			return err
		}
		return ctl.Advance(ctx, onboarding.FieldServices, input)
	}

	labels := profession.ServiceLabels()
	selected := make(map[string]bool, len(f.Services))
	for _, s := range f.Services {
		selected[s] = true
	}
	for i, label := range labels {
		mark := " "
		if selected[label] {
			mark = "x"
		}
		con.printf("  [%s] %d) %s\n", mark, i+1, label)
	}

	input, err := read(con, "Toggle services (e.g. 1,3; empty to continue)", "")
	if err != nil {
		return err
	}
	if strings.TrimSpace(input) == "" {
		return ctl.Advance(ctx, "", "")
	}
	for _, part := range strings.Split(input, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if err := ctl.ToggleService(pick(part, labels)); err != nil {
			return err
		}
	}
	return nil
}

// pick 输入为编号时映射到选项，否则原样返回
func pick(input string, options []string) string {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return input
}

func printFieldErrors(con *console, errs map[onboarding.Field]string) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	for _, f := range fields {
		con.printf("  %s: %s\n", f, errs[onboarding.Field(f)])
	}
}

func printResult(con *console, ctl *onboarding.Controller) {
	resp := ctl.Result()
	if resp == nil {
		return
	}
	con.printf("\nWelcome, %s! Vendor ID %s.\n", resp.Vendor.FullName, resp.Vendor.ID)
	con.printf("Your account is pending verification. Submit documents with the verification API to go live.\n")
}
