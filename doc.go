// Package doceval measures how well document extraction output matches
// human-curated gold standards and writes the scores as TSV reports.
//
// # Quick Start
//
//	err := doceval.MeasureTextExtractionAccuracy(ctx,
//	    "unstructured_output", "gold_standard_cct", "metrics",
//	    doceval.WithOutputType("txt"),
//	    doceval.WithGrouping("doctype"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Reports
//
// Each evaluator writes one row per document (filename, doctype, connector and
// its scores) and a summary of every score column:
//   - text accuracy: all-docs-cct.tsv, aggregate-scores-cct.tsv
//   - element types: all-docs-element-type-frequency.tsv, aggregate-scores-element-type.tsv
//   - table structure: all-docs-table-structure-accuracy.tsv, aggregate-table-structure-accuracy.tsv
//
// Grouped text accuracy goes to all-{grouping}-agg-cct.tsv.
//
// # Pairing
//
// A prediction "<connector>/<name>.json" is scored against the gold standard
// "<name>.txt" (text) or "<name>.json" (element types, tables), found either at
// the same relative path under the source directory or at its top level.
// Documents without a counterpart are logged and skipped.
//
// The single-pair scorers live in the metrics package.
package doceval
