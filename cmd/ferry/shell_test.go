package main

import (
	"context"
	"testing"
)

func TestWebIndexURL(t *testing.T) {
	cases := []struct {
		name      string
		serverURL string
		apiKey    string
		want      string
	}{
		{"plain", "http://127.0.0.1:7525", "abc", "http://127.0.0.1:7525/?api_key=abc"},
		{"trailing slash stripped", "http://host:1234/", "abc", "http://host:1234/?api_key=abc"},
		{"key escaped", "http://host", "a&b c", "http://host/?api_key=a%26b+c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := webIndexURL(tc.serverURL, tc.apiKey); got != tc.want {
				t.Errorf("webIndexURL(%q, %q) = %q, want %q", tc.serverURL, tc.apiKey, got, tc.want)
			}
		})
	}
}

func TestDispatchArgChecks(t *testing.T) {
	a := &app{ready: true}
	ctx := context.Background()

	cases := []struct {
		cmd  string
		args []string
	}{
		{"upload", nil},
		{"upload", []string{"a", "b"}},
		{"download", nil},
		{"download", []string{"a", "b", "c"}},
		{"delete", nil},
	}
	for _, tc := range cases {
		if err := dispatch(ctx, a, tc.cmd, tc.args); err == nil {
			t.Errorf("dispatch(%s, %v) accepted bad arity", tc.cmd, tc.args)
		}
	}

	if err := dispatch(ctx, a, "nope", nil); err == nil {
		t.Error("dispatch accepted an unknown command")
	}
	if err := dispatch(ctx, a, "exit", nil); err != errShellExit {
		t.Errorf("dispatch(exit) = %v, want shell exit", err)
	}
	if err := dispatch(ctx, a, "quit", nil); err != errShellExit {
		t.Errorf("dispatch(quit) = %v, want shell exit", err)
	}
}
