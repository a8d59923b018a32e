package model

// ExperienceLevel 商家经验等级
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "Beginner"
	ExperienceIntermediate ExperienceLevel = "Intermediate"
	ExperienceExpert       ExperienceLevel = "Expert"
)

// Valid 是否为已知等级
func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceExpert:
		return true
	}
	return false
}

// Vendor 商家账号
type Vendor struct {
	BaseModel
	PublicID        int64           `gorm:"uniqueIndex;not null" json:"public_id"`
	Email           string          `gorm:"uniqueIndex;type:varchar(254);not null" json:"email"`
	PasswordHash    string          `gorm:"type:varchar(255);not null" json:"-"`
	FullName        string          `gorm:"type:varchar(100);not null" json:"full_name"`
	Mobile          string          `gorm:"type:varchar(10);not null" json:"mobile"`
	Business        string          `gorm:"type:varchar(50);not null;index:idx_vendors_business" json:"business"`
	ExperienceLevel ExperienceLevel `gorm:"type:varchar(20);not null;default:'Beginner'" json:"experience_level"`
	IsOnline        bool            `gorm:"not null;default:false" json:"is_online"`
	IsVerified      bool            `gorm:"not null;default:false" json:"is_verified"`

	Profile  *VendorProfile  `gorm:"foreignKey:VendorID" json:"profile,omitempty"`
	Services []VendorService `gorm:"foreignKey:VendorID" json:"services,omitempty"`
}

// TableName 指定表名
func (Vendor) TableName() string {
	return "vendors"
}

// VendorProfile 商家地址信息
type VendorProfile struct {
	BaseModel
	VendorID int64  `gorm:"uniqueIndex;not null" json:"vendor_id"`
	Location string `gorm:"type:varchar(255);not null;default:''" json:"location"`
	City     string `gorm:"type:varchar(100);not null;default:''" json:"city"`
	State    string `gorm:"type:varchar(100);not null;default:''" json:"state"`
	Pincode  string `gorm:"type:varchar(10);not null;default:''" json:"pincode"`
}

func (VendorProfile) TableName() string {
	return "vendor_profiles"
}

// VendorService 商家提供的服务，注册时每个勾选项一行；同一商家下名称唯一
type VendorService struct {
	BaseModel
	VendorID      int64  `gorm:"not null;uniqueIndex:idx_vendor_services_name,priority:1" json:"vendor_id"`
	Name          string `gorm:"type:varchar(255);not null;uniqueIndex:idx_vendor_services_name,priority:2" json:"name"`
	Category      string `gorm:"type:varchar(100);not null" json:"category"`
	Description   string `gorm:"type:text;not null;default:''" json:"description"`
	PricePaise    int64  `gorm:"not null;default:0" json:"price_paise"`
	MinimumPeople *int   `json:"minimum_people,omitempty"`
	MaximumPeople *int   `json:"maximum_people,omitempty"`
	IsActive      bool   `gorm:"not null;default:true" json:"is_active"`
}

func (VendorService) TableName() string {
	return "vendor_services"
}
