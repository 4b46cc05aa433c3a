// Package bench times filter operations on the store and the baselines.
//
// The find benchmark loads Populate(prefix, n, repeatEach) into a target,
// then times two filters:
//
//	column1 = prefix + itoa(n/20)   expects 11 records
//	column2 = "500"                 expects n/repeatEach records
//
// The text probe matches record n/20 itself plus the ten records
// 10*(n/20) .. 10*(n/20)+9, hence 11 for any valid workload.
//
// Go benchmarks in bench_test.go cover the individual filter paths.
package bench
