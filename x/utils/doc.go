/*
Package utils contains decorators that every application wants: panic
recovery, transaction logging and savepoints.
*/
package utils
