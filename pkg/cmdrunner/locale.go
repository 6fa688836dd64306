// SPDX-License-Identifier: MPL-2.0

package cmdrunner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// LocaleC is the default forced locale.
	LocaleC = "C"
	// LocaleAuto asks the LocaleProber for the best parsable locale.
	LocaleAuto = "auto"
)

// DefaultLocalePreferences is the order in which parsable locales are chosen.
var DefaultLocalePreferences = []string{"C.utf8", "C.UTF-8", "en_US.utf8", "en_US.UTF-8", "C", "POSIX"}

// ErrNoParsableLocale is returned when none of the preferred locales is installed.
var ErrNoParsableLocale = errors.New("no parsable locale available")

type (
	// LocaleProber picks a locale whose command output is safe to parse.
	LocaleProber interface {
		BestParsableLocale(ctx context.Context) (string, error)
	}

	// CommandLocaleProber lists host locales with `locale -a` and returns the
	// first entry of Preferences that is installed.
	CommandLocaleProber struct {
		Executor    Executor
		Resolver    Resolver
		Preferences []string
	}
)

// BestParsableLocale implements LocaleProber.
func (p CommandLocaleProber) BestParsableLocale(ctx context.Context) (string, error) {
	resolver := p.Resolver
	if resolver == nil {
		resolver = PathResolver{}
	}
	executor := p.Executor
	if executor == nil {
		executor = ExecExecutor{}
	}
	prefs := p.Preferences
	if len(prefs) == 0 {
		prefs = DefaultLocalePreferences
	}

	bin, err := resolver.Resolve("locale", nil)
	if err != nil {
		return "", err
	}
	out, err := executor.Execute(ctx, Invocation{Argv: []string{bin, "-a"}})
	if err != nil {
		return "", err
	}
	if out.RC != 0 {
		return "", fmt.Errorf("locale -a exited with status %d: %s", out.RC, strings.TrimSpace(out.Stderr))
	}

	available := strings.Fields(out.Stdout)
	for _, pref := range prefs {
		if slices.Contains(available, pref) {
			return pref, nil
		}
	}
	return "", ErrNoParsableLocale
}
