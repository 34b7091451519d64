/*
Package gconf implements a store for singleton objects, intended to be used as
a global, in-database configuration.

Every singleton is kept under a fixed key. Objects are validated before being
written, so that the persisted state is always valid. Loading a missing
singleton fails with errors.ErrNotFound.
*/
package gconf
