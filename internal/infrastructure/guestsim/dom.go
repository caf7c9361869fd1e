package guestsim

import (
	"net/url"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/grafana/sobek"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chaoxe/miniapp/internal/infrastructure/bridge"
	"github.com/chaoxe/miniapp/internal/logging"
)

// DOM node types as exposed to scripts.
const (
	elementNodeType  = 1
	textNodeType     = 3
	documentNodeType = 9
)

// mutationObserver is the Go side of a script-created MutationObserver.
type mutationObserver struct {
	object   *sobek.Object
	callback sobek.Callable
	targets  []observation
}

type observation struct {
	node      *html.Node
	childList bool
	subtree   bool
}

// installGlobals exposes window, document, location and the handful of
// browser APIs the page script relies on. window is the global object.
func (d *Document) installGlobals() error {
	global := d.vm.GlobalObject()
	log := logging.FromContext(d.ctx)

	location := d.newLocation()
	document := d.newDocumentObject(location)

	console := d.vm.NewObject()
	for _, level := range []string{"log", "info", "warn", "error", "debug"} {
		lvl := level
		_ = console.Set(lvl, func(call sobek.FunctionCall) sobek.Value {
			parts := make([]string, 0, len(call.Arguments))
			for _, arg := range call.Arguments {
				parts = append(parts, arg.String())
			}
			log.Debug().Str("level", lvl).Msg("[page] " + strings.Join(parts, " "))
			return sobek.Undefined()
		})
	}

	globals := map[string]any{
		"window":           global,
		"self":             global,
		"document":         document,
		"location":         location,
		"console":          console,
		"open":             d.jsOpen,
		"MutationObserver": d.newMutationObserver,
	}
	if d.withHost {
		globals[bridge.DefaultBindingName] = func(call sobek.FunctionCall) sobek.Value {
			d.post(call.Argument(0).String())
			return sobek.Undefined()
		}
	}
	for name, v := range globals {
		if err := global.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) newLocation() *sobek.Object {
	loc := d.vm.NewObject()
	u := d.location
	_ = loc.Set("href", u.String())
	_ = loc.Set("protocol", u.Scheme+":")
	_ = loc.Set("host", u.Host)
	_ = loc.Set("hostname", u.Hostname())
	_ = loc.Set("pathname", u.EscapedPath())
	_ = loc.Set("origin", u.Scheme+"://"+u.Host)
	search := ""
	if u.RawQuery != "" {
		search = "?" + u.RawQuery
	}
	_ = loc.Set("search", search)
	hash := ""
	if u.Fragment != "" {
		hash = "#" + u.EscapedFragment()
	}
	_ = loc.Set("hash", hash)
	_ = loc.Set("toString", func(sobek.FunctionCall) sobek.Value {
		return d.vm.ToValue(u.String())
	})
	return loc
}

func (d *Document) newDocumentObject(location *sobek.Object) *sobek.Object {
	doc := d.vm.NewObject()
	_ = doc.Set("nodeType", documentNodeType)
	_ = doc.Set("location", location)
	_ = doc.Set("addEventListener", d.jsAddEventListener)
	_ = doc.Set("removeEventListener", func(sobek.FunctionCall) sobek.Value { return sobek.Undefined() })
	_ = doc.Set("querySelector", d.jsQuerySelector)
	_ = doc.Set("querySelectorAll", d.jsQuerySelectorAll)

	d.accessor(doc, "title", func() sobek.Value {
		return d.vm.ToValue(d.titleLocked())
	}, func(v sobek.Value) {
		d.setTitleLocked(v.String())
	})
	d.accessor(doc, "documentElement", func() sobek.Value {
		return d.wrap(d.findFirst("html"))
	}, nil)
	d.accessor(doc, "head", func() sobek.Value {
		return d.wrap(d.findFirst("head"))
	}, nil)
	d.accessor(doc, "body", func() sobek.Value {
		return d.wrap(d.findFirst("body"))
	}, nil)
	return doc
}

// accessor defines a getter/setter pair on obj. Either side may be nil.
func (d *Document) accessor(obj *sobek.Object, name string, get func() sobek.Value, set func(sobek.Value)) {
	var getter, setter sobek.Value
	if get != nil {
		getter = d.vm.ToValue(func(sobek.FunctionCall) sobek.Value { return get() })
	}
	if set != nil {
		setter = d.vm.ToValue(func(call sobek.FunctionCall) sobek.Value {
			set(call.Argument(0))
			return sobek.Undefined()
		})
	}
	if err := obj.DefineAccessorProperty(name, getter, setter, sobek.FLAG_TRUE, sobek.FLAG_TRUE); err != nil {
		logging.FromContext(d.ctx).Error().Err(err).Str("property", name).Msg("failed to define accessor")
	}
}

func (d *Document) jsAddEventListener(call sobek.FunctionCall) sobek.Value {
	if call.Argument(0).String() != "click" {
		return sobek.Undefined()
	}
	if fn, ok := sobek.AssertFunction(call.Argument(1)); ok {
		d.listeners = append(d.listeners, fn)
	}
	return sobek.Undefined()
}

func (d *Document) jsQuerySelector(call sobek.FunctionCall) sobek.Value {
	sel, err := cascadia.Compile(call.Argument(0).String())
	if err != nil {
		panic(d.vm.NewGoError(err))
	}
	return d.wrap(sel.MatchFirst(d.root))
}

func (d *Document) jsQuerySelectorAll(call sobek.FunctionCall) sobek.Value {
	sel, err := cascadia.Compile(call.Argument(0).String())
	if err != nil {
		panic(d.vm.NewGoError(err))
	}
	nodes := sel.MatchAll(d.root)
	values := make([]any, 0, len(nodes))
	for _, n := range nodes {
		values = append(values, d.wrap(n))
	}
	return d.vm.NewArray(values...)
}

func (d *Document) jsOpen(call sobek.FunctionCall) sobek.Value {
	target := call.Argument(0).String()
	d.opened = append(d.opened, target)
	logging.FromContext(d.ctx).Debug().Str("url", target).Msg("window.open")
	return sobek.Null()
}

// newMutationObserver backs `new MutationObserver(callback)`.
func (d *Document) newMutationObserver(call sobek.ConstructorCall) *sobek.Object {
	cb, ok := sobek.AssertFunction(call.Argument(0))
	if !ok {
		panic(d.vm.NewTypeError("MutationObserver callback is not a function"))
	}

	mo := &mutationObserver{object: call.This, callback: cb}
	_ = call.This.Set("observe", func(c sobek.FunctionCall) sobek.Value {
		target := d.unwrap(c.Argument(0))
		if target == nil {
			panic(d.vm.NewTypeError("MutationObserver.observe target is not a node"))
		}
		obs := observation{node: target}
		if opts, ok := c.Argument(1).(*sobek.Object); ok {
			obs.childList = truthy(opts.Get("childList"))
			obs.subtree = truthy(opts.Get("subtree"))
		}
		if len(mo.targets) == 0 {
			d.observers = append(d.observers, mo)
		}
		mo.targets = append(mo.targets, obs)
		return sobek.Undefined()
	})
	_ = call.This.Set("disconnect", func(sobek.FunctionCall) sobek.Value {
		mo.targets = nil
		for i, o := range d.observers {
			if o == mo {
				d.observers = append(d.observers[:i], d.observers[i+1:]...)
				break
			}
		}
		return sobek.Undefined()
	})
	return nil
}

func truthy(v sobek.Value) bool {
	return v != nil && v.ToBoolean()
}

// notifyChildList delivers a childList record for target to every observer
// watching it directly or through a subtree observation.
func (d *Document) notifyChildList(target *html.Node) {
	observers := make([]*mutationObserver, len(d.observers))
	copy(observers, d.observers)

	for _, mo := range observers {
		if !mo.watches(target) {
			continue
		}
		record := d.vm.NewObject()
		_ = record.Set("type", "childList")
		_ = record.Set("target", d.wrap(target))
		if _, err := mo.callback(mo.object, d.vm.NewArray(record), mo.object); err != nil {
			logging.FromContext(d.ctx).Warn().Err(err).Msg("mutation observer threw")
		}
	}
}

func (mo *mutationObserver) watches(target *html.Node) bool {
	for _, obs := range mo.targets {
		if !obs.childList {
			continue
		}
		if obs.node == target || (obs.subtree && isAncestor(obs.node, target)) {
			return true
		}
	}
	return false
}

func isAncestor(ancestor, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// wrap returns the script object for n, creating it once per node.
func (d *Document) wrap(n *html.Node) sobek.Value {
	if n == nil {
		return sobek.Null()
	}
	if obj, ok := d.wrappers[n]; ok {
		return obj
	}

	obj := d.vm.NewObject()
	d.wrappers[n] = obj
	d.nodes[obj] = n

	switch n.Type {
	case html.ElementNode:
		tag := strings.ToUpper(n.Data)
		_ = obj.Set("nodeType", elementNodeType)
		_ = obj.Set("tagName", tag)
		_ = obj.Set("nodeName", tag)
		_ = obj.Set("style", d.styleFor(n))
		_ = obj.Set("getAttribute", func(call sobek.FunctionCall) sobek.Value {
			if v, ok := attr(n, call.Argument(0).String()); ok {
				return d.vm.ToValue(v)
			}
			return sobek.Null()
		})
		d.accessor(obj, "href", func() sobek.Value {
			if n.DataAtom != atom.A && n.DataAtom != atom.Area {
				return sobek.Undefined()
			}
			return d.vm.ToValue(d.resolveHref(n))
		}, nil)
	case html.TextNode:
		_ = obj.Set("nodeType", textNodeType)
		_ = obj.Set("nodeName", "#text")
	case html.DocumentNode:
		_ = obj.Set("nodeType", documentNodeType)
		_ = obj.Set("nodeName", "#document")
	}

	d.accessor(obj, "parentNode", func() sobek.Value {
		return d.wrap(n.Parent)
	}, nil)
	d.accessor(obj, "parentElement", func() sobek.Value {
		if n.Parent == nil || n.Parent.Type != html.ElementNode {
			return sobek.Null()
		}
		return d.wrap(n.Parent)
	}, nil)
	d.accessor(obj, "textContent", func() sobek.Value {
		return d.vm.ToValue(textOf(n))
	}, nil)
	return obj
}

func (d *Document) unwrap(v sobek.Value) *html.Node {
	obj, ok := v.(*sobek.Object)
	if !ok {
		return nil
	}
	return d.nodes[obj]
}

func (d *Document) styleFor(n *html.Node) *sobek.Object {
	if style, ok := d.styles[n]; ok {
		return style
	}
	style := d.vm.NewObject()
	d.styles[n] = style
	return style
}

// resolveHref returns the href attribute resolved against the page URL,
// the way HTMLAnchorElement.href does. A missing attribute yields "".
func (d *Document) resolveHref(n *html.Node) string {
	raw, ok := attr(n, "href")
	if !ok {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return d.location.ResolveReference(ref).String()
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textOf(c))
	}
	return b.String()
}

func (d *Document) findFirst(selector string) *html.Node {
	return cascadia.MustCompile(selector).MatchFirst(d.root)
}

func (d *Document) titleLocked() string {
	n := d.findFirst("title")
	if n == nil {
		return ""
	}
	return strings.Join(strings.Fields(textOf(n)), " ")
}

// setTitleLocked replaces the children of <title> with one text node,
// creating the element in <head> when the page has none.
func (d *Document) setTitleLocked(title string) {
	n := d.findFirst("title")
	if n == nil {
		head := d.findFirst("head")
		if head == nil {
			return
		}
		n = &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
		head.AppendChild(n)
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	d.notifyChildList(n)
}
