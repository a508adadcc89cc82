// Package pkg provides the core libraries for MoodCanvas generative art.
//
// # Overview
//
// MoodCanvas turns text into deterministic images: the prompt's hash
// picks the colors and seeds the randomness, so the same text always
// produces the same art. The pkg directory is organized into these
// areas:
//
//  1. [text], [emotion], [palette], [field] - Domain logic (prompt
//     normalization, emotion scoring, color derivation, flowfields)
//  2. [render] - Rasterization (flowfield strokes, shape compositions,
//     palette strips, PNG encoding)
//  3. [cache], [gallery], [config] - Infrastructure (staged result
//     caching, render history, configuration)
//  4. [pipeline] - Orchestration (derive → trace → render)
//
// # Architecture
//
// The typical data flow through MoodCanvas:
//
//	Prompt text
//	     ↓
//	[text] package (canonicalize + tokenize)
//	     ↓
//	[palette] + [emotion] packages (colors, seed, weights)
//	     ↓
//	[field] package (particle traces, flow mode)
//	     ↓
//	[render] package (stroke or compose, encode PNG)
//
// # Quick Start
//
// Run the full pipeline through a Runner:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Prompt: "calm ocean sunrise",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("art.png", result.PNG, 0o644)
package pkg
