package model

import "strings"

// Service 某个职业下可选的服务项
type Service struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Profession 商家职业及其服务列表，注册时 business 取 Label
type Profession struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Services []Service `json:"services"`
}

// Professions 职业目录，顺序即展示顺序
var Professions = []Profession{
	{
		ID:    "photography",
		Label: "Photography",
		Services: []Service{
			{ID: "traditional", Label: "Wedding Photography"},
			{ID: "candid", Label: "Candid Photography"},
			{ID: "drone", Label: "Drone Photography"},
			{ID: "album-design", Label: "Album / Book Design"},
			{ID: "retouching", Label: "Photo Retouching & Enhancement"},
			{ID: "baby-shoot", Label: "Baby / Maternity Shoot"},
			{ID: "corporate", Label: "Corporate Photography"},
			{ID: "product", Label: "Product Photography"},
			{ID: "fashion", Label: "Fashion / Portfolio Photography"},
		},
	},
	{
		ID:    "catering",
		Label: "Catering",
		Services: []Service{
			{ID: "veg", Label: "Vegetarian"},
			{ID: "non-veg", Label: "Non-Vegetarian"},
			{ID: "buffet", Label: "Buffet Service"},
			{ID: "live-stall", Label: "Live Stalls"},
			{ID: "desserts", Label: "Desserts & Sweets"},
			{ID: "beverages", Label: "Beverages & Bar"},
			{ID: "plated", Label: "Plated Service"},
			{ID: "themed", Label: "Themed Cuisine"},
			{ID: "international", Label: "International Menu"},
			{ID: "bbq", Label: "BBQ & Grill"},
		},
	},
	{
		ID:    "decoration",
		Label: "Decoration",
		Services: []Service{
			{ID: "stage-mandap", Label: "Stage & Mandap Decoration"},
			{ID: "theme-based", Label: "Theme-based Decoration"},
			{ID: "floral", Label: "Floral Decoration"},
			{ID: "balloon-neon", Label: "Balloon & Neon Decor"},
			{ID: "drapery", Label: "Drapery & Fabric Setup"},
			{ID: "entrance", Label: "Entrance Gate Decoration"},
			{ID: "lighting", Label: "Lighting Setup"},
			{ID: "backdrop", Label: "Backdrop Design"},
			{ID: "furniture", Label: "Furniture Rental & Styling"},
			{ID: "props", Label: "Props & Installations"},
			{ID: "centerpieces", Label: "Table Centerpieces"},
			{ID: "photo-booth", Label: "Selfie Corners"},
			{ID: "tent-canopy", Label: "Tent / Canopy Setup"},
			{ID: "greenery", Label: "Greenery & Garden Decor"},
		},
	},
	{
		ID:    "dj",
		Label: "DJ",
		Services: []Service{
			{ID: "club", Label: "Club DJ"},
			{ID: "wedding", Label: "Wedding DJ"},
			{ID: "corporate", Label: "Corporate DJ"},
			{ID: "live-band", Label: "Live Band"},
			{ID: "sound-system", Label: "Sound & Lighting Setup"},
			{ID: "emcee", Label: "Emcee & Host"},
			{ID: "karaoke", Label: "Karaoke Setup"},
			{ID: "dj-night", Label: "DJ Night Party Setup"},
		},
	},
	{
		ID:    "event-manager",
		Label: "Event Manager",
		Services: []Service{
			{ID: "wedding", Label: "Wedding Management"},
			{ID: "corporate", Label: "Corporate Event"},
			{ID: "birthday", Label: "Birthday/Private Party"},
		},
	},
	{
		ID:    "transportation",
		Label: "Transportation",
		Services: []Service{
			{ID: "bridal-car", Label: "Bridal / Groom Car Rental"},
			{ID: "luxury", Label: "Vintage & Luxury Cars"},
			{ID: "procession", Label: "Horse / Elephant Procession"},
			{ID: "decorated-vehicle", Label: "Decorated Wedding Vehicles"},
			{ID: "shuttle", Label: "Guest Shuttle Bus"},
			{ID: "airport", Label: "Airport Pickup / Drop"},
			{ID: "vendor-transport", Label: "Artist & Vendor Transport"},
			{ID: "valet", Label: "Valet Parking"},
			{ID: "logistics", Label: "Luggage / Gift Transport"},
			{ID: "car-rental", Label: "Car Rental"},
			{ID: "bus", Label: "Bus/Tempo Traveller"},
			{ID: "luxury", Label: "Luxury Vehicles"},
		},
	},
	{
		ID:    "florist",
		Label: "Florist",
		Services: []Service{
			{ID: "wedding-flowers", Label: "Wedding Flowers"},
			{ID: "bouquet", Label: "Bouquets"},
			{ID: "stage-floral", Label: "Stage Floral Decoration"},
			{ID: "garlands", Label: "Garlands & Floral Jewelry"},
			{ID: "centerpieces", Label: "Floral Centerpieces"},
		},
	},
	{
		ID:    "baker",
		Label: "Baker",
		Services: []Service{
			{ID: "wedding-cake", Label: "Wedding Cake"},
			{ID: "cupcakes", Label: "Cupcakes"},
			{ID: "custom", Label: "Custom Desserts"},
			{ID: "cookies", Label: "Cookies & Pastries"},
			{ID: "dessert-table", Label: "Dessert Table Setup"},
		},
	},
	{
		ID:    "videography",
		Label: "Videography",
		Services: []Service{
			{ID: "traditional", Label: "Traditional Videography"},
			{ID: "cinematic", Label: "Cinematic Videography"},
			{ID: "drone", Label: "Drone Videography"},
			{ID: "highlight", Label: "Highlight Films"},
			{ID: "livestream", Label: "Event Live Streaming"},
			{ID: "editing", Label: "Video Editing & Post-Production"},
			{ID: "teaser", Label: "Wedding Teaser & Trailer"},
			{ID: "reel", Label: "Short Reels & Social Media Edits"},
		},
	},
	{
		ID:    "makeup-artist",
		Label: "Makeup Artist",
		Services: []Service{
			{ID: "bridal", Label: "Bridal Makeup"},
			{ID: "party", Label: "Party Makeup"},
			{ID: "airbrush", Label: "Airbrush Makeup"},
			{ID: "hd", Label: "HD Makeup"},
			{ID: "groom", Label: "Groom Makeup"},
		},
	},
	{
		ID:    "hair-stylist",
		Label: "Hair Stylist",
		Services: []Service{
			{ID: "bridal", Label: "Bridal Hairstyle"},
			{ID: "casual", Label: "Casual Hairstyle"},
			{ID: "fashion", Label: "Fashion / Runway"},
			{ID: "hair-extension", Label: "Hair Extensions"},
			{ID: "spa", Label: "Hair Spa & Treatment"},
		},
	},
	{
		ID:    "fashion-designer",
		Label: "Fashion Designer",
		Services: []Service{
			{ID: "bridal", Label: "Bridal Wear"},
			{ID: "party", Label: "Party Wear"},
			{ID: "custom", Label: "Custom Designs"},
			{ID: "ethnic", Label: "Ethnic & Traditional Outfits"},
			{ID: "menswear", Label: "Men's Designer Wear"},
		},
	},
	{
		ID:    "gift-services",
		Label: "Gift Services",
		Services: []Service{
			{ID: "return-gifts", Label: "Return Gifts"},
			{ID: "hampers", Label: "Gift Hampers"},
			{ID: "custom", Label: "Custom Gifts"},
			{ID: "packaging", Label: "Gift Wrapping & Packaging"},
			{ID: "corporate", Label: "Corporate Gifts"},
		},
	},
	{
		ID:    "entertainment",
		Label: "Entertainment",
		Services: []Service{
			{ID: "live-band", Label: "Live Band"},
			{ID: "dance", Label: "Dance Troupe"},
			{ID: "standup", Label: "Stand-up Comedy"},
			{ID: "folk", Label: "Folk & Cultural Performances"},
			{ID: "instrumentalist", Label: "Instrumentalists"},
			{ID: "anchors-mc", Label: "Anchors"},
		},
	},
	{
		ID:    "lighting",
		Label: "Lighting",
		Services: []Service{
			{ID: "stage", Label: "Stage Lighting"},
			{ID: "ambient", Label: "Ambient Lighting"},
			{ID: "dj", Label: "DJ Lighting"},
			{ID: "fairy", Label: "Fairy & Decorative Lights"},
			{ID: "outdoor", Label: "Outdoor Flood Lighting"},
		},
	},
}

// FindProfession 按 Label 查找职业，大小写不敏感
func FindProfession(label string) (Profession, bool) {
	label = strings.TrimSpace(label)
	for _, p := range Professions {
		if strings.EqualFold(p.Label, label) {
			return p, true
		}
	}
	return Profession{}, false
}

// HasService 该职业是否提供某项服务
func (p Profession) HasService(label string) bool {
	label = strings.TrimSpace(label)
	for _, s := range p.Services {
		if s.Label == label {
			return true
		}
	}
	return false
}

// ServiceLabels 返回服务名称列表
func (p Profession) ServiceLabels() []string {
	labels := make([]string, 0, len(p.Services))
	for _, s := range p.Services {
		labels = append(labels, s.Label)
	}
	return labels
}

// ProfessionLabels 返回所有职业名称
func ProfessionLabels() []string {
	labels := make([]string, 0, len(Professions))
	for _, p := range Professions {
		labels = append(labels, p.Label)
	}
	return labels
}
