// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/antgroup/diff3forge/pkg/tr"
)

var (
	W = tr.W // translate func wrap
)

var (
	ErrFlagsIncompatible = errors.New("flags incompatible")
)

func diev(format string, a ...any) {
	var b bytes.Buffer
	_, _ = b.WriteString(W("fatal: "))
	fmt.Fprintf(&b, W(format), a...)
	_ = b.WriteByte('\n')
	_, _ = os.Stderr.Write(b.Bytes())
}

// die: translate message and fatal
func die(m string) {
	var b bytes.Buffer
	_, _ = b.WriteString(W("fatal: "))
	_, _ = b.WriteString(W(m))
	_ = b.WriteByte('\n')
	_, _ = os.Stderr.Write(b.Bytes())
}
