// Package async provides a bounded worker pool for fan-out work such
// as uploading several files in one command. Workers recover from
// panics and report task errors on a collection channel instead of
// crashing the process.
package async
