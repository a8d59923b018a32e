package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	ri "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"VendorHub/config"
	"VendorHub/internal/cache"
	"VendorHub/internal/model"
	"VendorHub/internal/repository"
	"VendorHub/pkg/password"
	"VendorHub/pkg/snowflake"
	"VendorHub/pkg/token"
	"VendorHub/storage/redis"
)

func setup(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	config.Cfg.JWTSecret = "test-secret"
	config.Cfg.JWTExpireMinutes = 30
	config.Cfg.JWTRefreshDays = 7
	config.Cfg.EncryptionKey = "0123456789abcdef0123456789abcdef"
	require.NoError(t, token.Init())
	require.NoError(t, snowflake.Init(1, 1))

	password.DefaultParams.Memory = 8 * 1024

	mr := miniredis.RunT(t)
	redis.SetClient(ri.NewClient(&ri.Options{Addr: mr.Addr()}))
	cache.VendorProfileCache.WithJitter(0)
	return mr
}

// fakeVendors 内存实现的 VendorRepository
type fakeVendors struct {
	mu       sync.Mutex
	byID     map[int64]*model.Vendor
	nextID   int64
	finds    int
	createFn func(*model.Vendor) error
}

func newFakeVendors() *fakeVendors {
	return &fakeVendors{byID: make(map[int64]*model.Vendor)}
}

func (f *fakeVendors) EmailExists(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.byID {
		if v.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeVendors) Create(ctx context.Context, vendor *model.Vendor) error {
	if f.createFn != nil {
		if err := f.createFn(vendor); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	vendor.ID = f.nextID
	if vendor.Profile != nil {
		vendor.Profile.VendorID = vendor.ID
	}
	for i := range vendor.Services {
		vendor.Services[i].VendorID = vendor.ID
	}
	stored := *vendor
	f.byID[vendor.ID] = &stored
	return nil
}

func (f *fakeVendors) find(match func(*model.Vendor) bool) (*model.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	for _, v := range f.byID {
		if match(v) {
			out := *v
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeVendors) FindByEmail(ctx context.Context, email string) (*model.Vendor, error) {
	return f.find(func(v *model.Vendor) bool { return v.Email == email })
}

func (f *fakeVendors) FindByPublicID(ctx context.Context, publicID int64) (*model.Vendor, error) {
	return f.find(func(v *model.Vendor) bool { return v.PublicID == publicID })
}

func (f *fakeVendors) SetOnline(ctx context.Context, vendorID int64, online bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[vendorID]
	if !ok {
		return repository.ErrNotFound
	}
	v.IsOnline = online
	return nil
}

func (f *fakeVendors) SetVerified(ctx context.Context, vendorID int64, verified bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[vendorID]
	if !ok {
		return repository.ErrNotFound
	}
	v.IsVerified = verified
	return nil
}

func (f *fakeVendors) UpdateProfile(ctx context.Context, vendor *model.Vendor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[vendor.ID]
	if !ok {
		return repository.ErrNotFound
	}
	v.FullName = vendor.FullName
	v.Mobile = vendor.Mobile
	v.ExperienceLevel = vendor.ExperienceLevel
	if vendor.Profile != nil {
		p := *vendor.Profile
		v.Profile = &p
	}
	return nil
}

func (f *fakeVendors) get(vendorID int64) model.Vendor {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.byID[vendorID]
}

// fakeVerifications 内存实现的 VerificationRepository
type fakeVerifications struct {
	mu      sync.Mutex
	records map[int64]*model.Verification
	nextID  int64
}

func newFakeVerifications() *fakeVerifications {
	return &fakeVerifications{records: make(map[int64]*model.Verification)}
}

func (f *fakeVerifications) FindByVendorID(ctx context.Context, vendorID int64) (*model.Verification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.records[vendorID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *v
	return &out, nil
}

func (f *fakeVerifications) Save(ctx context.Context, v *model.Verification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v.ID == 0 {
		f.nextID++
		v.ID = f.nextID
	}
	stored := *v
	f.records[v.VendorID] = &stored
	return nil
}

// recordingPublisher 记录发布的审核事件
type recordingPublisher struct {
	err  error
	msgs []model.VerificationStatusMessage
}

func (p *recordingPublisher) PublishVerificationStatus(ctx context.Context, msg model.VerificationStatusMessage) error {
	p.msgs = append(p.msgs, msg)
	return p.err
}

// fakeOfferings 内存实现的 OfferingRepository，按 (vendor_id, name) 唯一
type fakeOfferings struct {
	mu     sync.Mutex
	byID   map[int64]*model.VendorService
	nextID int64
}

func newFakeOfferings() *fakeOfferings {
	return &fakeOfferings{byID: make(map[int64]*model.VendorService)}
}

func (f *fakeOfferings) ListByVendor(ctx context.Context, vendorID int64) ([]model.VendorService, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.VendorService, 0)
	for id := int64(1); id <= f.nextID; id++ {
		if s, ok := f.byID[id]; ok && s.VendorID == vendorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeOfferings) Find(ctx context.Context, vendorID, id int64) (*model.VendorService, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok || s.VendorID != vendorID {
		return nil, repository.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (f *fakeOfferings) nameTaken(s *model.VendorService) bool {
	for _, other := range f.byID {
		if other.VendorID == s.VendorID && other.Name == s.Name && other.ID != s.ID {
			return true
		}
	}
	return false
}

func (f *fakeOfferings) Create(ctx context.Context, s *model.VendorService) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.nameTaken(s) {
		return repository.ErrDuplicate
	}
	f.nextID++
	s.ID = f.nextID
	stored := *s
	f.byID[s.ID] = &stored
	return nil
}

func (f *fakeOfferings) Update(ctx context.Context, s *model.VendorService) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.byID[s.ID]
	if !ok || existing.VendorID != s.VendorID {
		return repository.ErrNotFound
	}
	if f.nameTaken(s) {
		return repository.ErrDuplicate
	}
	stored := *s
	f.byID[s.ID] = &stored
	return nil
}

func (f *fakeOfferings) Delete(ctx context.Context, vendorID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok || s.VendorID != vendorID {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}
