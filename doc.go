// Package datagen provides specification-driven synthetic data
// generation.
//
// A data spec names fields and says how to make each one's value.
// The core code is in package 'core', Suppliers for the built-in
// types are in 'suppliers' and 'types', the Loader that compiles a
// spec is in 'loader', and the driver that makes records is in
// 'generator'.  The command-line tool is in `cmd/datagen`.
package datagen
