/*
Package splittest provides mocks and helpers for testing the splitter
application and its extensions.
*/
package splittest
