// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diff3

// mapping translates between a ThreeWayBlock's Kind and the "===="
// separator suffix the report emitter prints. Files are numbered in the
// classic diff3 order: 1 = F0 ("mine"), 2 = FC (the common ancestor),
// 3 = F1 ("yours"). The suffix names whichever single file differs from
// the other two: ONLY_1 (only F0 changed) prints "====1", ONLY_2 (only F1
// changed) prints "====3" since F1 is file 3, and ONLY_3 (F0 and F1 made
// the identical change, so only the ancestor differs from the other two)
// prints "====2". A genuine three-way conflict (ALL) prints bare "====".
var kindSeparatorSuffix = map[Kind]string{
	ALL:    "",
	ONLY_1: "1",
	ONLY_2: "3",
	ONLY_3: "2",
}

func separatorFor(k Kind) string {
	return "====" + kindSeparatorSuffix[k]
}

// reportSectionOrder gives the file-number order the report emitter writes
// a block's three sections in: 1,2,3 for ALL and ONLY_1 (the odd file, if
// any, is already first), odd-file-first-then-the-rest otherwise — file 3
// first for ONLY_2 (odd one is F1, file 3), file 2 first for ONLY_3 (odd
// one is FC, file 2).
var reportSectionOrder = map[Kind][3]int{
	ALL:    {1, 2, 3},
	ONLY_1: {1, 2, 3},
	ONLY_2: {3, 1, 2},
	ONLY_3: {2, 1, 3},
}
