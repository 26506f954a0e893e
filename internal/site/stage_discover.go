package site

// stageDiscover enumerates the eligible documents under the content root.
func stageDiscover(bs *BuildState) error {
	root := bs.Config.ContentRoot()
	found, err := bs.discovery.Discover(root)
	if err != nil {
		return discoveryError(root, err)
	}
	bs.Docs = found
	bs.Report.Documents = len(found)
	bs.recorder.SetDocumentsDiscovered(len(found))
	return nil
}
