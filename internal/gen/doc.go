// Package gen renders schema documents and writes them to disk.
//
// A document is one module block holding beans and enums in input order,
// each preceded by its hash marker:
//
//	module "cfg" {
//	  // hash:6f1c0e0d4b3a2918
//	  bean "Monster" parent="Entity" comment="Monster is a hostile creature." {
//	    var "name" type="string"
//	    var "drops" type="list,DropItem"
//	  }
//	  // hash:0a9b8c7d6e5f4a3b
//	  enum "Quality" {
//	    item "Common" value=0
//	    item "Epic" value=2 alias="epic"
//	  }
//	}
//
// Blocks are rendered with text/template. Every string goes through
// strconv.Quote, so names and comments never break the grammar. Entries
// reused from a previous document are inserted byte for byte.
//
// WriteFile replaces the output atomically: the document is written to a
// temporary file next to the target and renamed over it.
package gen
