// Package mmap maps whole files into memory for the complete-input splitter.
package mmap
