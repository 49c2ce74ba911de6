package main

import (
	"path/filepath"
	"testing"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{args: nil, want: 1},
		{args: []string{" 3 "}, want: 3},
		{args: []string{"0"}, wantErr: true},
		{args: []string{"-2"}, wantErr: true},
		{args: []string{"two"}, wantErr: true},
	}
	for _, tc := range tests {
		got, err := parseSteps(tc.args)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("parseSteps(%q) = %d, %v", tc.args, got, err)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion("1776300200"); err != nil || v != 1776300200 {
		t.Fatalf("unexpected version %d err %v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected negative version to fail")
	}
	if v, err := parseTarget("1776300100"); err != nil || v != 1776300100 {
		t.Fatalf("unexpected target %d err %v", v, err)
	}
	if _, err := parseTarget("latest"); err == nil {
		t.Fatalf("expected non-numeric target to fail")
	}
}

func TestResolveMigrationsDir(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "")
	dir := t.TempDir()

	got, err := resolveMigrationsDir(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if want, _ := filepath.Abs(dir); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	t.Setenv("MIGRATIONS_DIR", dir)
	if got, err := resolveMigrationsDir(filepath.Join(dir, "missing")); err != nil || got == "" {
		t.Fatalf("expected fallback to MIGRATIONS_DIR, got %q err %v", got, err)
	}
}
