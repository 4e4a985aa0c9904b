/*
Package workspace runs duplications against stored stages.

A Manager loads a stage from a ports.StageStore, materialises it in memory,
triggers the duplicator and saves the result back. Every stage is guarded by a
reference-counted local mutex and, when configured, a distributed lock, so the
resolve-then-create sequence of one run never interleaves with another run on
the same stage.
*/
package workspace
