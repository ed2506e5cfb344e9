package objects

import "path"

// FlattenTree walks the tree at rootHash (recursively) and returns a flat
// map from repo-relative, forward-slash path to blob hash. An empty
// rootHash denotes the empty tree (e.g. an unborn HEAD) and yields an
// empty map.
func FlattenTree(vegaDir, rootHash string) (map[string]string, error) {
	out := make(map[string]string)
	if rootHash == "" {
		return out, nil
	}
	if err := flattenInto(vegaDir, rootHash, "", out); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(vegaDir, treeHash, prefix string, out map[string]string) error {
	entries, err := ReadTree(vegaDir, treeHash)
	if err != nil {
		return err
	}
	for _, e := range entries {
		full := e.Name
		if prefix != "" {
			full = path.Join(prefix, e.Name)
		}
		switch e.Kind {
		case KindBlob:
			out[full] = e.Hash
		case KindTree:
			if err := flattenInto(vegaDir, e.Hash, full, out); err != nil {
				return err
			}
		}
	}
	return nil
}
