package entity

// ImageCategory selects the placeholder used when an image URL is missing.
type ImageCategory string

const (
	ImageBanner        ImageCategory = "banner"
	ImageAchievement   ImageCategory = "achievement"
	ImageService       ImageCategory = "service"
	ImageEnvironmental ImageCategory = "environmental"
	ImageVolunteer     ImageCategory = "volunteer"
	ImageCheckin       ImageCategory = "checkin"
	ImageActivity      ImageCategory = "activity"
	ImageDefault       ImageCategory = "default"
)

// DefaultImages maps each category to its bundled placeholder.
func DefaultImages() map[ImageCategory]string {
	return map[ImageCategory]string{
		ImageBanner:        "/static/banner-default.jpg",
		ImageAchievement:   "/static/achievement-default.jpg",
		ImageService:       "/static/service-default.jpg",
		ImageEnvironmental: "/static/default-env.jpg",
		ImageVolunteer:     "/static/volunteer-default.jpg",
		ImageCheckin:       "/static/checkin-default.jpg",
		ImageActivity:      "/static/activity-default.jpg",
		ImageDefault:       "/static/default-image.jpg",
	}
}

// CommonImageFields are the API response fields that always hold image URLs.
var CommonImageFields = []string{"image_url", "thumbnail", "cover_image", "image", "avatar", "icon"}
