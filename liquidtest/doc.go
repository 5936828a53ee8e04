/*
Package liquidtest provides mocks and helpers for testing extensions
without a running application.
*/
package liquidtest
