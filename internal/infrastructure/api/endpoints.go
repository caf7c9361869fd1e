package api

import (
	"context"
	"strconv"
)

// processData rewrites image fields in env.Data. Paginated payloads of the
// form {"items": [...]} have only their items rewritten.
func (c *Client) processData(env *Envelope, paginated bool, fields ...string) *Envelope {
	if env == nil || !env.Success || env.Data == nil {
		return env
	}
	if paginated {
		if obj, ok := env.Data.(map[string]any); ok {
			if items, ok := obj["items"]; ok && items != nil {
				out := make(map[string]any, len(obj))
				for k, v := range obj {
					out[k] = v
				}
				out["items"] = c.images.ProcessFields(items, fields...)
				env.Data = out
				return env
			}
		}
	}
	env.Data = c.images.ProcessFields(env.Data, fields...)
	return env
}

func (c *Client) getProcessed(ctx context.Context, path string, params Params, paginated bool, fields ...string) (*Envelope, error) {
	env, err := c.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	return c.processData(env, paginated, fields...), nil
}

func limitParams(limit, fallback int) Params {
	if limit <= 0 {
		limit = fallback
	}
	return Params{"limit": limit}
}

// Banners

func (c *Client) Banners(ctx context.Context, params Params) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/banners/", params, false, "image_url")
}

func (c *Client) ActiveBanners(ctx context.Context, limit int) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/banners/active/list", limitParams(limit, 10), false, "image_url")
}

func (c *Client) BannerDetail(ctx context.Context, id string) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/banners/"+id, nil, false, "image_url")
}

// Achievements

func (c *Client) Achievements(ctx context.Context, params Params) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/achievements/", params, true, "thumbnail")
}

func (c *Client) LatestAchievements(ctx context.Context, limit int) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/achievements/published/latest", limitParams(limit, 5), false, "thumbnail")
}

// AchievementDetail also rewrites every entry of the images array.
func (c *Client) AchievementDetail(ctx context.Context, id string) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/achievements/"+id, nil, false, "thumbnail", "images")
}

// Services

func (c *Client) Services(ctx context.Context, params Params) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/services/", params, true, "thumbnail")
}

func (c *Client) SearchServices(ctx context.Context, keyword, category string, limit int) (*Envelope, error) {
	params := limitParams(limit, 20)
	params["q"] = keyword
	params["category"] = category
	return c.getProcessed(ctx, "/api/v1/services/search", params, false, "thumbnail")
}

func (c *Client) ServiceCategories(ctx context.Context) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/services/categories", nil, false, "icon", "image")
}

func (c *Client) ServiceDetail(ctx context.Context, id string) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/services/"+id, nil, false, "thumbnail")
}

func (c *Client) ServiceEnvironmentalRequirements(ctx context.Context, serviceID string, params Params) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/services/"+serviceID+"/environmental-requirements", params, true, "thumbnail")
}

// Environmental requirements

func (c *Client) EnvironmentalRequirements(ctx context.Context, params Params) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/environmental-requirements/", params, true, "thumbnail")
}

func (c *Client) SearchEnvironmentalRequirements(ctx context.Context, keyword string, limit int) (*Envelope, error) {
	params := limitParams(limit, 20)
	params["q"] = keyword
	return c.getProcessed(ctx, "/api/v1/environmental-requirements/search", params, false, "thumbnail")
}

func (c *Client) EnvironmentalRequirementsByService(ctx context.Context, serviceID string, params Params) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/environmental-requirements/by-service/"+serviceID, params, true, "thumbnail")
}

func (c *Client) EnvironmentalRequirementDetail(ctx context.Context, id string) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/environmental-requirements/"+id, nil, false, "thumbnail")
}

// Messages

func (c *Client) SubmitMessage(ctx context.Context, message any) (*Envelope, error) {
	return c.Post(ctx, "/api/v1/messages/", message)
}

func (c *Client) Messages(ctx context.Context, params Params) (*Envelope, error) {
	return c.Get(ctx, "/api/v1/messages/", params)
}

func (c *Client) MessageDetail(ctx context.Context, id string) (*Envelope, error) {
	return c.Get(ctx, "/api/v1/messages/"+id, nil)
}

func (c *Client) ReplyMessage(ctx context.Context, id string, reply any) (*Envelope, error) {
	return c.Put(ctx, "/api/v1/messages/"+id+"/reply", reply)
}

func (c *Client) MessageStats(ctx context.Context) (*Envelope, error) {
	return c.Get(ctx, "/api/v1/messages/stats/summary", nil)
}

// Volunteer activities

func (c *Client) VolunteerActivities(ctx context.Context, params Params) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/volunteer-activities/", params, true, "thumbnail", "cover_image")
}

func (c *Client) UpcomingActivities(ctx context.Context, limit int) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/volunteer-activities/upcoming/list", limitParams(limit, 5), false, "thumbnail", "cover_image")
}

func (c *Client) ActivityDetail(ctx context.Context, id string) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/volunteer-activities/"+id, nil, false, "thumbnail", "cover_image")
}

// Check-in spots

func (c *Client) CheckinSpots(ctx context.Context, params Params) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/checkin-spots/", params, true, "thumbnail")
}

func (c *Client) PopularSpots(ctx context.Context, limit int) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/checkin-spots/popular/list", limitParams(limit, 10), false, "thumbnail")
}

func (c *Client) Checkin(ctx context.Context, spotID string) (*Envelope, error) {
	return c.Post(ctx, "/api/v1/checkin-spots/"+spotID+"/checkin", nil)
}

// NearbySpots searches around a coordinate. radius is in kilometres and
// defaults to 5.
func (c *Client) NearbySpots(ctx context.Context, latitude, longitude, radius float64, limit int) (*Envelope, error) {
	if radius <= 0 {
		radius = 5.0
	}
	params := limitParams(limit, 20)
	params["latitude"] = strconv.FormatFloat(latitude, 'f', -1, 64)
	params["longitude"] = strconv.FormatFloat(longitude, 'f', -1, 64)
	params["radius"] = strconv.FormatFloat(radius, 'f', -1, 64)
	return c.getProcessed(ctx, "/api/v1/checkin-spots/nearby/search", params, false, "thumbnail")
}

func (c *Client) CheckinSpotDetail(ctx context.Context, id string) (*Envelope, error) {
	return c.getProcessed(ctx, "/api/v1/checkin-spots/"+id, nil, false, "thumbnail")
}

// System

func (c *Client) SystemInfo(ctx context.Context) (*Envelope, error) {
	return c.Get(ctx, "/api/v1/system/info", nil)
}

func (c *Client) SystemHealth(ctx context.Context) (*Envelope, error) {
	return c.Get(ctx, "/api/v1/system/health", nil)
}

func (c *Client) SystemStats(ctx context.Context) (*Envelope, error) {
	return c.Get(ctx, "/api/v1/system/stats", nil)
}

func (c *Client) ChatbotURL(ctx context.Context) (*Envelope, error) {
	return c.Get(ctx, "/api/v1/system/chatbot", nil)
}

func (c *Client) AssistantConfig(ctx context.Context) (*Envelope, error) {
	return c.Get(ctx, "/api/v1/system/assistant", nil)
}
