// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the value types shared by every flowbricks component:
// the crawled pipeline graph, candidate regions and their derived boundaries,
// cataloged unit summaries with their ports, match queries and results, and
// the resolved execution plans that recompose units into new pipelines.
//
// # Core Concepts
//
//   - Graph: an immutable snapshot of a pipeline platform, made of data and
//     transform nodes linked by predecessor/successor edges.
//
//   - Region: a caller-supplied subset of a Graph that may become a reusable
//     unit. A RegionBoundary is derived from it and never stored.
//
//   - UnitSummary: the cataloged description of a unit, including its typed
//     input and output Ports.
//
//   - Query / MatchResult: what a caller asks the catalog for, and how well
//     each unit answered.
//
//   - ResolvedPlan: the deterministic execution order, parallel stages and
//     wiring produced when several units are recomposed.
//
// Why a separate model package?
//
// The boundary analyzer, the matcher and the resolver never depend on each
// other. They only agree on these types, which keeps each algorithm testable
// in isolation and lets loaders and emitters live outside the core.
package model
