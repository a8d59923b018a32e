package onboarding

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"VendorHub/internal/localstore"
	"VendorHub/internal/model"
	"VendorHub/internal/model/dto"
	"VendorHub/pkg/logger"
)

const (
	msgRegistered     = "Registration successful!"
	msgRegisterFailed = "Registration failed: "
	msgSessionUnsaved = "Registration succeeded but the session could not be saved. Please log in."
)

// Registrar 引导流程依赖的远端接口
type Registrar interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
}

// Form 已输入的表单数据
type Form struct {
	Email    string
	Password string
	FullName string
	Mobile   string
	Business string
	Services []string
	City     string
	State    string
	Pincode  string
}

func (f Form) clone() Form {
	f.Services = append([]string(nil), f.Services...)
	return f
}

func (f Form) credentials() Credentials {
	return Credentials{Email: f.Email, Password: f.Password}
}

func (f Form) contact() Contact {
	return Contact{FullName: f.FullName, Mobile: f.Mobile}
}

func (f Form) category() Category {
	return Category{Business: f.Business}
}

func (f Form) serviceSelection() ServiceSelection {
	return ServiceSelection{Services: f.Services}
}

func (f Form) location() Location {
	return Location{City: f.City, State: f.State, Pincode: f.Pincode}
}

// State 控制器快照
type State struct {
	Errors     map[Field]string
	Form       Form
	Step       Step
	Submitting bool
	Completed  bool
}

type Option func(*Controller)

func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithTransitionDelay 前进一步前的等待时间，默认 0
func WithTransitionDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller 引导流程控制器，可并发调用；网络请求进行中时修改操作返回 ErrBusy
type Controller struct {
	reg      Registrar
	store    localstore.Store
	notifier Notifier
	log      *zap.Logger
	stage    Stage
	errs     map[Field]string
	result   *dto.AuthResponse
	form     Form
	delay    time.Duration

	mu        sync.Mutex
	busy      bool
	completed bool
}

func New(reg Registrar, store localstore.Store, opts ...Option) *Controller {
	c := &Controller{
		reg:   reg,
		store: store,
		log:   logger.Logger,
		stage: Start(),
		errs:  make(map[Field]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = LogNotifier{Logger: c.log}
	}
	return c
}

func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage.Step()
}

// Submitting 注册请求是否进行中
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy && c.stage.Step() == LastStep
}

func (c *Controller) Completed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed
}

// Result 注册成功后的响应
func (c *Controller) Result() *dto.AuthResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

func (c *Controller) Errors() map[Field]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorsCopy()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Step:       c.stage.Step(),
		Form:       c.form.clone(),
		Errors:     c.errorsCopy(),
		Submitting: c.busy && c.stage.Step() == LastStep,
		Completed:  c.completed,
	}
}

func (c *Controller) errorsCopy() map[Field]string {
	out := make(map[Field]string, len(c.errs))
	for k, v := range c.errs {
		out[k] = v
	}
	return out
}

// IsStepValid 按当前表单数据判断某一步是否可以通过，不修改状态
func (c *Controller) IsStepValid(step Step) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return validateStep(c.form, step) == nil
}

func validateStep(form Form, step Step) error {
	if !step.Valid() {
		return ErrStepInvalid
	}
	switch step {
	case StepCredentials:
		return form.credentials().Validate()
	case StepContact:
		return form.contact().Validate()
	case StepCategory:
		return form.category().Validate()
	case StepServices:
		return form.serviceSelection().Validate()
	case StepLocation:
		return form.location().Validate()
	default:
		return ErrStepInvalid
	}
}

func (c *Controller) mutable() error {
	if c.completed {
		return ErrCompleted
	}
	if c.busy {
		return ErrBusy
	}
	return nil
}

// Set 修改当前步骤的字段，清除该字段的错误提示
func (c *Controller) Set(field Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.mutable(); err != nil {
		return err
	}
	return c.set(field, value)
}

func (c *Controller) set(field Field, value string) error {
	if field.Step() != c.stage.Step() {
		return fmt.Errorf("%w: %s on %s step", ErrFieldNotOnStep, field, c.stage.Step())
	}

	value = sanitize(field, value)
	switch field {
	case FieldEmail:
		c.form.Email = value
	case FieldPassword:
		c.form.Password = value
	case FieldFullName:
		c.form.FullName = value
	case FieldMobile:
		c.form.Mobile = value
	case FieldBusiness:
		value = strings.TrimSpace(value)
		if value != c.form.Business {
			// 换了职业，之前选的服务不再适用
			c.form.Services = nil
		}
		c.form.Business = value
	case FieldServices:
		c.form.Services = splitServices(value)
	case FieldCity:
		c.form.City = value
	case FieldState:
		c.form.State = value
	case FieldPincode:
		c.form.Pincode = strings.TrimSpace(value)
	}
	delete(c.errs, field)
	return nil
}

func splitServices(value string) []string {
	var services []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		services = append(services, part)
	}
	return services
}

// ToggleService 勾选或取消某项服务，职业在目录中时只接受目录内的服务
func (c *Controller) ToggleService(service string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.mutable(); err != nil {
		return err
	}
	st, ok := c.stage.(ServicesStage)
	if !ok {
		return fmt.Errorf("%w: %s on %s step", ErrFieldNotOnStep, FieldServices, c.stage.Step())
	}

	service = strings.TrimSpace(SanitizeInput(service))
	if service == "" {
		return ErrBlankService
	}
	if profession, ok := model.FindProfession(st.Business()); ok && !profession.HasService(service) {
		return fmt.Errorf("%w: %q", ErrUnknownService, service)
	}

	for i, s := range c.form.Services {
		if s == service {
			c.form.Services = append(c.form.Services[:i:i], c.form.Services[i+1:]...)
			delete(c.errs, FieldServices)
			return nil
		}
	}
	c.form.Services = append(c.form.Services, service)
	delete(c.errs, FieldServices)
	return nil
}

// Blur 字段失去焦点时校验，非空且不合法时记录提示并返回；
// 请求进行中或流程已完成时不做任何事
func (c *Controller) Blur(field Field) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mutable() != nil {
		return ""
	}
	msg := validateField(c.form, field)
	if msg != "" {
		c.errs[field] = msg
	}
	return msg
}

// Retreat 回到上一步并清除错误提示，第一步时不做任何事
func (c *Controller) Retreat() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.mutable(); err != nil {
		return err
	}

	switch st := c.stage.(type) {
	case CredentialsStage:
		return nil
	case ContactStage:
		c.stage = st.Back()
	case CategoryStage:
		c.stage = st.Back()
	case ServicesStage:
		c.stage = st.Back()
	case LocationStage:
		c.stage = st.Back()
	}
	c.errs = make(map[Field]string)
	return nil
}

// Advance 合并字段后校验当前步骤。第一步会检查邮箱是否已注册，
// 第五步提交注册，其余步骤前进一步。field 为空时只校验不合并。
func (c *Controller) Advance(ctx context.Context, field Field, value string) error {
	c.mu.Lock()
	if err := c.mutable(); err != nil {
		c.mu.Unlock()
		return err
	}
	if field != "" {
		if err := c.set(field, value); err != nil {
			c.mu.Unlock()
			return err
		}
	}

	next, app, err := c.resolve()
	if err != nil {
		if verr, ok := err.(*ValidationError); ok {
			// 只保留本次校验的结果
			for _, f := range verr.Step.Fields() {
				delete(c.errs, f)
			}
			for f, msg := range verr.Fields {
				c.errs[Field(f)] = msg
			}
		}
		c.mu.Unlock()
		return err
	}
	c.busy = true
	email := c.form.Email
	c.mu.Unlock()

	if app != nil {
		return c.submit(ctx, *app)
	}
	return c.moveTo(ctx, next, email)
}

// resolve 用当前表单计算下一阶段，最后一步返回注册申请
func (c *Controller) resolve() (Stage, *Application, error) {
	switch st := c.stage.(type) {
	case CredentialsStage:
		next, err := st.Next(c.form.credentials())
		return next, nil, err
	case ContactStage:
		next, err := st.Next(c.form.contact())
		return next, nil, err
	case CategoryStage:
		next, err := st.Next(c.form.category())
		return next, nil, err
	case ServicesStage:
		next, err := st.Next(c.form.serviceSelection())
		return next, nil, err
	case LocationStage:
		app, err := st.Complete(c.form.location())
		if err != nil {
			return nil, nil, err
		}
		return nil, &app, nil
	default:
		return nil, nil, ErrStepInvalid
	}
}

func (c *Controller) moveTo(ctx context.Context, next Stage, email string) error {
	var err error
	if next.Step() == StepContact {
		err = c.checkEmail(ctx, email)
	}
	if err == nil {
		err = c.wait(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		if err == ErrEmailTaken {
			c.errs[FieldEmail] = MsgEmailTaken
		}
		return err
	}

	c.stage = next
	c.errs = make(map[Field]string)
	return nil
}

// checkEmail 查询失败时放行，只有明确已注册才阻止
func (c *Controller) checkEmail(ctx context.Context, email string) error {
	exists, err := c.reg.EmailExists(ctx, email)
	if err != nil {
		c.log.Warn("Email existence check failed, continuing",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil
	}
	if exists {
		return ErrEmailTaken
	}
	return nil
}

func (c *Controller) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Controller) submit(ctx context.Context, app Application) error {
	resp, err := c.reg.Register(ctx, app.Request())
	if err != nil {
		serr := newSubmitError(err)
		c.log.Warn("Registration failed",
			zap.String("email", app.Credentials.Email),
			zap.Stringer("kind", serr.Kind),
			zap.Error(err),
		)
		c.notifier.Error(msgRegisterFailed + serr.Reason())

		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
		return serr
	}

	persistErr := c.persist(ctx, app, resp)

	c.mu.Lock()
	c.busy = false
	c.completed = true
	c.result = resp
	c.mu.Unlock()

	if persistErr != nil {
		c.log.Error("Failed to save session after registration",
			zap.String("vendor_id", resp.Vendor.ID),
			zap.Error(persistErr),
		)
		c.notifier.Error(msgSessionUnsaved)
		return persistErr
	}

	c.log.Info("Vendor registered",
		zap.String("vendor_id", resp.Vendor.ID),
		zap.String("business", app.Category.Business),
	)
	c.notifier.Success(msgRegistered)
	return nil
}

// persist 写入 token、资料快照和审核状态，新注册的商家一律未审核
func (c *Controller) persist(ctx context.Context, app Application, resp *dto.AuthResponse) error {
	profile := resp.Vendor
	profile.IsVerified = false

	profileJSON, err := localstore.EncodeJSON(profile)
	if err != nil {
		return err
	}
	recordJSON, err := localstore.EncodeJSON(app.Record())
	if err != nil {
		return err
	}

	err = c.store.SetMany(ctx, map[string]string{
		localstore.KeyAccessToken:        resp.Access,
		localstore.KeyRefreshToken:       resp.Refresh,
		localstore.KeyVendorProfile:      profileJSON,
		localstore.KeyOnboarding:         recordJSON,
		localstore.KeyVerificationStatus: localstore.StatusPending,
	})
	if err != nil {
		return fmt.Errorf("onboarding: save session: %w", err)
	}
	return nil
}
