// Package nexus provides a hybrid content-acquisition engine for
// language-model clients. It turns a free-text query into filtered,
// re-ranked search results and a URL into token-efficient extracted
// text, biasing both pipelines toward technical documentation when
// asked to.
//
// This package contains domain types, interfaces, and the pure
// classification, ranking, and extraction logic. Implementations
// live in subdirectories named after their primary dependency
// (e.g., goquery/, http/, duckduckgo/, mcp/).
package nexus
