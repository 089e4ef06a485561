// Package authz evaluates authorization requirements against a resolved
// role summary.
//
// Everything here is a pure function of its inputs: no network, no
// clock, no side effects. An absent summary always denies (fail
// closed), as do unknown projects and unknown roles.
package authz
