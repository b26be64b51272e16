// Package suppliers has the core.Supplier implementations that the
// field types are built from.
//
// Suppliers here know nothing about specs.  The types package reads
// Field Specs and config and then calls these constructors.
//
// Most Suppliers don't care what iteration they are asked for.  The
// stateful ones (Buffered, CombineList, CronDate and CSV suppliers
// over chunked data) expect iterations in non-decreasing order.
// Buffered and chunked CSV data return a RuntimeError when asked for
// something they can no longer serve.
package suppliers
