// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tcase

// RenderOneLine exposes the diagnostics rendering to the behavioral
// tests.
var RenderOneLine = renderOneLine
