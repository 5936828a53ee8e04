/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each package keeps a single protobuf configuration entity under the
"_c:<package>" key. Configuration is loaded from the genesis file and can be
updated later by its owner using UpdateConfigurationHandler.
*/
package gconf
