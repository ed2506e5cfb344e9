package objects

// WriteBlob stores raw file content as a blob object and returns its hash.
func WriteBlob(vegaDir string, content []byte) (string, error) {
	return Write(vegaDir, KindBlob, content)
}

// ReadBlob returns the raw content stored at hash.
func ReadBlob(vegaDir, hash string) ([]byte, error) {
	return ReadKind(vegaDir, hash, KindBlob)
}
