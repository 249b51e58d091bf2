// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package tr

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

//go:embed languages
var langFS embed.FS

var (
	langTable = make(map[string]any)
)

// detectLocale resolves the user's language preference from the POSIX
// locale environment variables, in the order glibc consults them.
func detectLocale() (language.Tag, error) {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG", "LANGUAGE"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		// strip encoding/modifier suffix, e.g. "zh_CN.UTF-8" -> "zh_CN"
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		v = strings.ReplaceAll(v, "_", "-")
		if tag, err := language.Parse(v); err == nil {
			return tag, nil
		}
	}
	return language.AmericanEnglish, nil
}

var (
	Language = sync.OnceValue(func() string {
		t, err := detectLocale()
		if err != nil {
			return "en-US"
		}
		lang := t.String()
		switch {
		case strings.HasPrefix(lang, "zh-Hans"), strings.HasPrefix(lang, "zh"):
			return "zh-CN"
		}
		return lang
	})
)

var (
	Initialize = sync.OnceValue(func() error {
		fd, err := langFS.Open(path.Join("languages", Language()+".toml"))
		if err != nil {
			return err
		}
		defer fd.Close() // nolint
		if _, err := toml.NewDecoder(fd).Decode(&langTable); err != nil {
			return err
		}
		return nil
	})
)

func translate(k string) string {
	if v, ok := langTable[k]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return k
}

func W(k string) string {
	return translate(k)
}

func Fprintf(w io.Writer, format string, a ...any) (n int, err error) {
	return fmt.Fprintf(w, translate(format), a...)
}

func Sprintf(format string, a ...any) string {
	return fmt.Sprintf(translate(format), a...)
}
