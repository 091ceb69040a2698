// Package testsupport holds fixture and golden helpers shared by the package
// tests. Helpers take *testing.T and fail the test instead of returning
// errors.
package testsupport
