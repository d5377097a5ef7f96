// Package bookstore provides the account layer for a bookstore admin and
// storefront API: JWT issuance, credential verification, role gating, and
// default account seeding.
//
// Accounts:
//   - A single accounts table backs both roles. Admins sign in with their
//     email, storefront users with their username; Identifier picks the right
//     one per role. Passwords are stored as bcrypt hashes only.
//   - AccountProvider verifies credentials against the Accounts repository,
//     tracks failed attempts, and enforces a cool down window after repeated
//     failures.
//
// Tokens:
//   - TokenService issues and validates HS256 JWTs carrying profile claims
//     (id, name, email, role, avatar). Every issued token has an expiration
//     and tokens without one are rejected during validation.
//   - Auther ties the provider and token service together behind the
//     Authenticator interface consumed by HTTP controllers and middleware.
//
// Bootstrap:
//   - Bootstrapper seeds a default admin (and optionally a default storefront
//     user) inside a transaction on startup, so a fresh deployment is never
//     left without a working admin login. Seeding is idempotent and tolerates
//     concurrent instances racing to create the same account.
package bookstore
