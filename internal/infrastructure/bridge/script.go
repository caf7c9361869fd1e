// Package bridge renders the page script injected into embedded views and
// carries the payloads it posts back to the host.
package bridge

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

const (
	// DefaultHostObject is the object path the page script posts through.
	DefaultHostObject = "wx.miniProgram"
	// DefaultBindingName is the global function a host shim forwards payloads to.
	DefaultBindingName = "__chaoxeBridge"

	installGuard = "__chaoxeBridgeInstalled"
)

//go:embed page_script.js.tmpl
var pageScriptSource string

//go:embed host_shim.js.tmpl
var hostShimSource string

var (
	pageScriptTmpl = template.Must(template.New("page_script").Parse(pageScriptSource))
	hostShimTmpl   = template.Must(template.New("host_shim").Parse(hostShimSource))

	identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// ScriptOptions controls how the page script is rendered.
type ScriptOptions struct {
	// HostObject is the dotted path of the object exposing postMessage,
	// looked up from window at run time.
	HostObject string `mapstructure:"host_object" toml:"host_object" json:"host_object"`
	// ScrollFix forces the document to be scrollable.
	ScrollFix bool `mapstructure:"scroll_fix" toml:"scroll_fix" json:"scroll_fix"`
}

// DefaultScriptOptions returns the options used by the mini-program runtime.
func DefaultScriptOptions() ScriptOptions {
	return ScriptOptions{
		HostObject: DefaultHostObject,
		ScrollFix:  true,
	}
}

// hostPath splits and validates the host object path.
func (o ScriptOptions) hostPath() ([]string, error) {
	path := o.HostObject
	if path == "" {
		path = DefaultHostObject
	}
	segments := strings.Split(strings.TrimPrefix(path, "window."), ".")
	for _, seg := range segments {
		if !identPattern.MatchString(seg) {
			return nil, fmt.Errorf("invalid host object path %q: bad segment %q", o.HostObject, seg)
		}
	}
	return segments, nil
}

// Validate checks that the options render a usable script.
func (o ScriptOptions) Validate() error {
	_, err := o.hostPath()
	return err
}

// InjectedScript renders the page script: link interception, title
// observation, the scroll fix-up and the single loaded announcement.
func InjectedScript(opts ScriptOptions) (string, error) {
	segments, err := opts.hostPath()
	if err != nil {
		return "", err
	}
	hostPath, err := json.Marshal(segments)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = pageScriptTmpl.Execute(&buf, struct {
		Guard     string
		HostPath  string
		ScrollFix bool
	}{
		Guard:     installGuard,
		HostPath:  string(hostPath),
		ScrollFix: opts.ScrollFix,
	})
	if err != nil {
		return "", fmt.Errorf("render page script: %w", err)
	}
	return buf.String(), nil
}

// HostShim renders a script that installs the host object on window and
// forwards every postMessage call, wrapped in a one-element JSON array, to
// the global function named binding.
func HostShim(opts ScriptOptions, binding string) (string, error) {
	if binding == "" {
		binding = DefaultBindingName
	}
	if !identPattern.MatchString(binding) {
		return "", fmt.Errorf("invalid binding name %q", binding)
	}
	segments, err := opts.hostPath()
	if err != nil {
		return "", err
	}
	hostPath, err := json.Marshal(segments)
	if err != nil {
		return "", err
	}
	bindingLit, err := json.Marshal(binding)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = hostShimTmpl.Execute(&buf, struct {
		HostPath string
		Binding  string
	}{
		HostPath: string(hostPath),
		Binding:  string(bindingLit),
	})
	if err != nil {
		return "", fmt.Errorf("render host shim: %w", err)
	}
	return buf.String(), nil
}
