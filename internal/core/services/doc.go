// Package services contains the core business logic, implementing the
// driving ports using the driven ports. Services are framework-free:
// they know nothing about HTTP, cobra or the terminal.
package services
