// Package paths provides the well-known locations creatorly reads from and
// writes to outside of the template and destination trees.
//
// It follows the XDG Base Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/creatorly (config.toml)
//   - Cache:  $XDG_CACHE_HOME/creatorly (git clones of remote templates)
//   - State:  $XDG_STATE_HOME/creatorly (creatorly.log)
//
// # Environment Variables
//
//   - CREATORLY_CONFIG_DIR: Override the config directory
//   - CREATORLY_CACHE_DIR: Override the cache directory
//   - XDG_STATE_HOME: Override the state directory root
package paths
