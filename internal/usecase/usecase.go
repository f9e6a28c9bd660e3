// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks. Every operation receives
// the verified caller as an explicit entity.Identity.
package usecase
