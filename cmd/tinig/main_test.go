package main

import (
	"testing"

	"github.com/peterbourgon/ff/v4"
)

func TestFlagParsing(t *testing.T) {
	fs, showLatin := newFlags()
	if err := ff.Parse(fs, []string{"--latin", "bahay", "kubo"}); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	if !*showLatin {
		t.Error("expected --latin to set the flag")
	}
	if args := fs.GetArgs(); len(args) != 2 || args[0] != "bahay" || args[1] != "kubo" {
		t.Errorf("unexpected positional args: %v", args)
	}
}

func TestFlagDefaults(t *testing.T) {
	fs, showLatin := newFlags()
	if err := ff.Parse(fs, []string{"bahay"}); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	if *showLatin {
		t.Error("expected --latin to default to false")
	}
}
