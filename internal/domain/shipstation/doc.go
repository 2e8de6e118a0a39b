// Package shipstation holds the configuration, field bindings, errors and
// events of the ShipStation XML bridge.
//
// ShipStation polls the storefront for orders (action=export) and reports
// shipped packages back (action=shipnotify). What is exported is driven by
// Settings: which workflow states and shipping methods qualify, and which
// custom fields carry phone numbers, notes, product images and bundles.
package shipstation
