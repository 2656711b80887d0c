package xliff

import (
	"strings"

	"github.com/beevik/etree"
)

// Unit is one <trans-unit> of a Document; changes write through to the document
type Unit struct {
	el *etree.Element
}

// ID returns the id attribute ("" when absent)
func (u *Unit) ID() string { return u.el.SelectAttrValue("id", "") }

// Attr returns the named attribute of the unit ("" when absent)
func (u *Unit) Attr(name string) string { return u.el.SelectAttrValue(name, "") }

// Translatable is false for translate="no"
func (u *Unit) Translatable() bool { return u.el.SelectAttrValue("translate", "") != "no" }

func (u *Unit) child(tag string) *etree.Element {
	for _, c := range u.el.ChildElements() {
		if isXLIFF(c, tag) {
			return c
		}
	}
	return nil
}

// Source returns the trimmed text of <source> up to its first inline element
func (u *Unit) Source() string {
	if s := u.child("source"); s != nil {
		return strings.TrimSpace(s.Text())
	}
	return ""
}

// HasTarget reports whether the unit carries a <target> element
func (u *Unit) HasTarget() bool { return u.child("target") != nil }

// Target returns the trimmed text of <target>, "" when absent
func (u *Unit) Target() string {
	if t := u.child("target"); t != nil {
		return strings.TrimSpace(t.Text())
	}
	return ""
}

// RawTarget returns the untrimmed text of <target> up to its first inline element
func (u *Unit) RawTarget() string {
	if t := u.child("target"); t != nil {
		return t.Text()
	}
	return ""
}

// State returns the target state attribute, "" when absent
func (u *Unit) State() string {
	if t := u.child("target"); t != nil {
		return t.SelectAttrValue("state", "")
	}
	return ""
}

// SetTarget sets the target text and state, creating <target> after <source> when missing.
// An empty state leaves the attribute alone
func (u *Unit) SetTarget(text, state string) {
	t := u.child("target")
	if t == nil {
		tag := "target"
		if src := u.child("source"); src != nil && src.Space != "" {
			tag = src.Space + ":target"
		} else if u.el.Space != "" {
			tag = u.el.Space + ":target"
		}
		t = etree.NewElement(tag)
		if src := u.child("source"); src != nil {
			u.el.InsertChildAt(src.Index()+1, t)
		} else {
			u.el.AddChild(t)
		}
	}
	t.SetText(text)
	if state != "" {
		t.CreateAttr("state", state)
	}
}
