// Package obo holds the ontology identifiers the pipeline annotates with —
// GENO for genotype machinery, SO for sequence types, ECO for evidence,
// RO for cross-entity relations — plus the fixed lookup tables that map
// source vocabulary labels (evidence symbols, GFF3 feature types, gene
// biotypes) onto those identifiers.
//
// Everything here is static configuration: the pipeline consumes these
// tables, it never computes or validates ontology terms. Identifiers are
// kept in CURIE form internally; the Prefixes table supplies the IRI
// namespaces for serializers that expand them at the boundary.
package obo
