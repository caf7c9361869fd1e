package entity

// LoadErrorCode is the error code reported by the embedding runtime when a
// view fails to load.
type LoadErrorCode int

const (
	// LoadErrorNetwork means the network was unreachable.
	LoadErrorNetwork LoadErrorCode = -1
	// LoadErrorTimeout means the page did not load in time.
	LoadErrorTimeout LoadErrorCode = -2
	// LoadErrorInvalidURL means the address could not be loaded at all.
	LoadErrorInvalidURL LoadErrorCode = -3
)

// User-facing load failure texts.
const (
	LoadErrorTextNetwork    = "网络连接失败，请检查网络设置。"
	LoadErrorTextTimeout    = "页面加载超时，请稍后重试。"
	LoadErrorTextInvalidURL = "页面地址无效，请检查链接是否正确。"
	LoadErrorTextGeneric    = "无法加载此页面，请检查链接是否正确或稍后重试。"
)

// LoadErrorEvent is the detail of an on-error lifecycle event.
// Runtimes report the code either as errCode or as code.
type LoadErrorEvent struct {
	ErrCode LoadErrorCode `json:"errCode,omitempty"`
	Code    LoadErrorCode `json:"code,omitempty"`
	ErrMsg  string        `json:"errMsg,omitempty"`
}

// EffectiveCode returns ErrCode when set, otherwise Code.
func (e LoadErrorEvent) EffectiveCode() LoadErrorCode {
	if e.ErrCode != 0 {
		return e.ErrCode
	}
	return e.Code
}

// UserMessage maps the event to the text shown in place of the page.
func (e LoadErrorEvent) UserMessage() string {
	switch e.EffectiveCode() {
	case LoadErrorNetwork:
		return LoadErrorTextNetwork
	case LoadErrorTimeout:
		return LoadErrorTextTimeout
	case LoadErrorInvalidURL:
		return LoadErrorTextInvalidURL
	}
	if e.ErrMsg != "" {
		return e.ErrMsg
	}
	return LoadErrorTextGeneric
}
