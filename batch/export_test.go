package batch

// Exported aliases for testing internal functions from
// the batch_test package.

// RenderAllForTest exposes renderAll.
var RenderAllForTest = renderAll
