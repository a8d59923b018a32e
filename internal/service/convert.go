package service

import (
	"strconv"

	"VendorHub/internal/model"
	"VendorHub/internal/model/dto"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/snowflake"
)

func toProfileDTO(v *model.Vendor) dto.VendorProfile {
	profile := dto.VendorProfile{
		ID:              strconv.FormatInt(v.PublicID, 10),
		Email:           v.Email,
		FullName:        v.FullName,
		Mobile:          v.Mobile,
		Business:        v.Business,
		ExperienceLevel: string(v.ExperienceLevel),
		IsOnline:        v.IsOnline,
		IsVerified:      v.IsVerified,
		CreatedAt:       v.CreatedAt,
		Services:        make([]dto.ServiceItem, 0, len(v.Services)),
	}

	if v.Profile != nil {
		profile.Location = v.Profile.Location
		profile.City = v.Profile.City
		profile.State = v.Profile.State
		profile.Pincode = v.Profile.Pincode
	}

	for _, s := range v.Services {
		if !s.IsActive {
			continue
		}
		profile.Services = append(profile.Services, dto.ServiceItem{
			Name:        s.Name,
			Category:    s.Category,
			Description: s.Description,
			PricePaise:  s.PricePaise,
		})
	}

	return profile
}

func toVerificationDTO(v *model.Verification) dto.VerificationResponse {
	return dto.VerificationResponse{
		ID:           v.ID,
		AadhaarLast4: v.AadhaarLast4,
		PANLast4:     v.PANLast4,
		Status:       string(v.Status),
		IsVerified:   v.Status == model.VerificationApproved,
		SubmittedAt:  v.SubmittedAt,
		ReviewedAt:   v.ReviewedAt,
	}
}

// parsePublicID JWT 中的 uid 转为 public_id
func parsePublicID(id string) (int64, error) {
	publicID, err := snowflake.Parse(id)
	if err != nil {
		return 0, pkgerrors.Unauthorized
	}
	return publicID, nil
}

// lastN 取末尾 n 个字符，用于证件号展示
func lastN(value string, n int) string {
	runes := []rune(value)
	if len(runes) <= n {
		return value
	}
	return string(runes[len(runes)-n:])
}

func toServiceDTO(s *model.VendorService) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:            strconv.FormatInt(s.ID, 10),
		Name:          s.Name,
		Category:      s.Category,
		Description:   s.Description,
		PricePaise:    s.PricePaise,
		MinimumPeople: s.MinimumPeople,
		MaximumPeople: s.MaximumPeople,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
