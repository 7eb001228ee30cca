// Copyright 2026 The Strada Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package compiler turns path templates into anchored matchers.
//
// A template mixes literal text with placeholders: {name} marks a required
// parameter, {name?} an optional one. Compilation produces a Pattern that
// matches whole request paths and extracts parameter values by name.
//
// Defaults: required parameters match one path segment ([^/]+); optional
// parameters match greedily, including across slashes (.+). The greedy
// optional default is inherited behavior — see the Compile documentation.
//
// Templates whose brace sequences are malformed degrade gracefully: the
// braces are matched as literal text rather than rejected.
package compiler
