package output

import (
	"io"
	"strings"
	"time"

	"github.com/waabox/snatch/internal/auth"
	"github.com/waabox/snatch/internal/domain"
)

// TextReporter prints tokens as human readable lines through a Printer.
type TextReporter struct {
	p   domain.Printer
	loc *time.Location
}

// Ensure TextReporter implements domain.Reporter.
var _ domain.Reporter = (*TextReporter)(nil)

// NewTextReporter creates a TextReporter rendering expiry times in loc (nil means local time).
func NewTextReporter(p domain.Printer, loc *time.Location) *TextReporter {
	return &TextReporter{p: p, loc: loc}
}

func (r *TextReporter) Report(tok domain.Token) error {
	r.p.Println(domain.ToneRule, "")
	r.p.Println(domain.ToneOK, "YOUR TOKENS:")
	r.p.Println(domain.ToneOK, "> Expire on "+domain.FormatExpiry(tok.ExpiresOn, r.loc))
	r.p.Println(domain.ToneOK, "> Resource: "+tok.Resource)
	if id, err := auth.DecodeIdentity(tok.AccessToken); err == nil && id.User != "" {
		line := "> Issued to: " + id.User
		if id.TenantID != "" {
			line += " (tenant " + id.TenantID + ")"
		}
		r.p.Println(domain.ToneOK, line)
	}
	r.p.Println(domain.ToneHeading, "[Access Token]")
	r.p.Println(domain.ToneSecret, tok.AccessToken)
	r.p.Println(domain.ToneHeading, "[Refresh Token]")
	r.p.Println(domain.ToneSecret, tok.RefreshToken)
	r.p.Println(domain.ToneRule, "")
	r.p.Println(domain.ToneOK, "Happy hacking!")
	return nil
}

// Document is the machine readable rendering of a token.
type Document struct {
	TokenType    string    `json:"token_type" yaml:"token_type"`
	Resource     string    `json:"resource" yaml:"resource"`
	Scope        []string  `json:"scope,omitempty" yaml:"scope,omitempty"`
	ExpiresOn    time.Time `json:"expires_on" yaml:"expires_on"`
	Expired      bool      `json:"expired" yaml:"expired"`
	User         string    `json:"user,omitempty" yaml:"user,omitempty"`
	TenantID     string    `json:"tenant_id,omitempty" yaml:"tenant_id,omitempty"`
	AppID        string    `json:"app_id,omitempty" yaml:"app_id,omitempty"`
	Audience     []string  `json:"audience,omitempty" yaml:"audience,omitempty"`
	AccessToken  string    `json:"access_token" yaml:"access_token"`
	RefreshToken string    `json:"refresh_token" yaml:"refresh_token"`
}

// NewDocument builds a Document from tok. Identity fields are filled when the
// access token is a readable JWT, whose scp claim also stands in for a missing scope.
func NewDocument(tok domain.Token) Document {
	ot := tok.OAuth2()
	resource, _ := ot.Extra("resource").(string)
	scope, _ := ot.Extra("scope").(string)

	doc := Document{
		TokenType:    ot.Type(),
		Resource:     resource,
		Scope:        strings.Fields(scope),
		ExpiresOn:    ot.Expiry.UTC(),
		Expired:      !ot.Valid(),
		AccessToken:  ot.AccessToken,
		RefreshToken: ot.RefreshToken,
	}
	if id, err := auth.DecodeIdentity(ot.AccessToken); err == nil {
		doc.User = id.User
		doc.TenantID = id.TenantID
		doc.AppID = id.AppID
		doc.Audience = id.Audience
		if len(doc.Scope) == 0 {
			doc.Scope = id.Scopes
		}
	}
	return doc
}

// ObjectReporter writes tokens as a json or yaml Document.
type ObjectReporter struct {
	w      io.Writer
	format Format
}

// Ensure ObjectReporter implements domain.Reporter.
var _ domain.Reporter = (*ObjectReporter)(nil)

func NewObjectReporter(w io.Writer, format Format) *ObjectReporter {
	return &ObjectReporter{w: w, format: format}
}

func (r *ObjectReporter) Report(tok domain.Token) error {
	return WriteObject(r.w, r.format, NewDocument(tok))
}
