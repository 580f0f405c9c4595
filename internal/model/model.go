// Package model contains the domain types shared by the store, the comparison
// engine and the service layer. It holds no persistence or transport logic.
//
// Lengths, previews and comparisons count Unicode code points, not bytes.
package model
