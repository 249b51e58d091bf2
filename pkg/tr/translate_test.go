package tr

import (
	"fmt"
	"os"
	"runtime"
	"testing"

	"golang.org/x/text/language"
)

func TestFS(t *testing.T) {
	_ = Initialize()
	fmt.Fprintf(os.Stderr, "load ok={%v}\n", W("conflict detected in merge output"))
	_, _ = Fprintf(os.Stderr, "current os '%s'\n", runtime.GOOS)
}

func TestLANG(t *testing.T) {
	_ = os.Setenv("LC_ALL", "zh_CN.UTF8")
	_ = Initialize()
	fmt.Fprintf(os.Stderr, "load ok={%v}\n", W("conflict detected in merge output"))
	_, _ = Fprintf(os.Stderr, "current os '%s'\n", runtime.GOOS)
}

func TestLocale(t *testing.T) {
	tag, err := detectLocale()
	if err != nil {
		t.Fatal(err)
	}
	fmt.Fprintf(os.Stderr, "%s\n", tag.String())
}

func TestLocale2(t *testing.T) {
	tag := language.Make("zh-Hans-US")
	tag2 := language.Make("zh-CN")
	base, c := tag.Base()
	fmt.Fprintf(os.Stderr, "%s %s %s\n", base.String(), c.String(), tag2)
}
