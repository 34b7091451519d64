/*
Package utils contains decorators shared by every handler of the
application: panic recovery, logging, savepoints and key tagging.
*/
package utils
