/*
Package ports defines the driven ports (interfaces) of the inference engine.

These interfaces decouple the core from external implementations, allowing the
engine to read networks from several formats and to memoise answers in
different backends.

# Key Interfaces

  - NetworkDecoder: turns a serialized definition (XML, YAML) into a domain.Network.
  - ResultCache: stores and retrieves query answers keyed by network and query.
  - QueryEngine: the two operations front-ends (HTTP, MCP, batch runner) depend on.
*/
package ports
