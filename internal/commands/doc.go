// Package commands implements every named editor command. Names are
// "<group>::<action>", for example "buffer::save"; keymaps refer to
// commands by name and Registry maps the names to their implementations.
package commands
