// Package site assembles the static site: it runs the build stages in order
// (prepare output, load templates, discover, parse, write pages, homepage,
// copy assets) over a shared BuildState and records the outcome of each stage
// in a BuildReport.
//
// The build is synchronous. Every page write is flushed to disk before the
// next one starts, and the first fatal stage error aborts the build. The
// output directory may be left partially written in that case.
package site
