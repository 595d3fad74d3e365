package directory

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestLookupStatic(t *testing.T) {
	d := New(zap.NewNop())

	entry := d.Lookup("7203")
	if entry.Name != "トヨタ自動車" {
		t.Errorf("name = %q, want トヨタ自動車", entry.Name)
	}
	if entry.IRPageURL == "" {
		t.Error("expected a known IR page for 7203")
	}

	entry = d.Lookup("6861")
	if entry.Name != "キーエンス" {
		t.Errorf("name = %q, want キーエンス", entry.Name)
	}
	if entry.IRPageURL != "" {
		t.Errorf("expected no IR page for 6861, got %q", entry.IRPageURL)
	}

	entry = d.Lookup("1234")
	if entry.Name != "企業コード1234" {
		t.Errorf("unknown code name = %q, want the placeholder", entry.Name)
	}
}

func TestResolveNameStaticShortCircuit(t *testing.T) {
	// Static hits must not touch the network; the failing client proves
	// it is never consulted.
	d := New(zap.NewNop())
	d.client = &http.Client{Transport: failingTransport{}}

	if got := d.ResolveName(context.Background(), "9433"); got != "KDDI" {
		t.Errorf("ResolveName(9433) = %q, want KDDI", got)
	}
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, fmt.Errorf("network disabled in test")
}

func TestResolveNameFromIRBank(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1 class="company-name">6501 日立製作所</h1></body></html>`)
	}))
	defer server.Close()

	d := New(zap.NewNop())
	d.irBank = server.URL
	d.yahoo = server.URL

	if got := d.ResolveName(context.Background(), "6501"); got != "日立製作所" {
		t.Errorf("ResolveName = %q, want 日立製作所", got)
	}
}

func TestResolveNameFallsBackToYahoo(t *testing.T) {
	irBank := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer irBank.Close()

	yahoo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1>日立製作所（6501）</h1></body></html>`)
	}))
	defer yahoo.Close()

	d := New(zap.NewNop())
	d.irBank = irBank.URL
	d.yahoo = yahoo.URL

	if got := d.ResolveName(context.Background(), "6501"); got != "日立製作所" {
		t.Errorf("ResolveName = %q, want 日立製作所", got)
	}
}

func TestResolveNamePlaceholderWhenAllFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	d := New(zap.NewNop())
	d.irBank = server.URL
	d.yahoo = server.URL

	if got := d.ResolveName(context.Background(), "6501"); got != "企業コード6501" {
		t.Errorf("ResolveName = %q, want the placeholder", got)
	}
}

func TestCleanIRBankHeading(t *testing.T) {
	cases := []struct {
		heading string
		want    string
	}{
		{"7203 トヨタ自動車", "トヨタ自動車"},
		{"トヨタ自動車 (7203)", "トヨタ自動車"},
		{"トヨタ自動車（7203）", "トヨタ自動車"},
		{"トヨタ自動車", "トヨタ自動車"},
	}
	for _, c := range cases {
		if got := CleanIRBankHeading(c.heading); got != c.want {
			t.Errorf("CleanIRBankHeading(%q) = %q, want %q", c.heading, got, c.want)
		}
	}
}

func TestCleanYahooHeading(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"トヨタ自動車(株)【7203】", "トヨタ自動車"},
		{"KDDI（9433）", "KDDI"},
		{"キーエンス", "キーエンス"},
	}
	for _, c := range cases {
		if got := CleanYahooHeading(c.title); got != c.want {
			t.Errorf("CleanYahooHeading(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}
