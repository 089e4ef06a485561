// Package cli implements the mwapctl command tree: login/logout and
// whoami, named API contexts, and the tenant, project, and catalog
// subcommands.
//
// Commands that touch the backend resolve the role summary first and
// check the relevant access requirement locally before issuing a
// mutation; a denial exits with a distinct code so scripts can tell
// "not allowed" from "failed".
package cli
