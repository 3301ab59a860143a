// Package testutil provides test doubles for the transcription pipeline.
//
//   - MockEngine and MockModel: testify mocks of api.Engine and api.Model
//   - MockAudioTools: testify mock of the decoding tool check
//   - MockTranscriptionDAO: in-memory history store with injectable errors
//   - fixtures: temp audio files and canned results
//
// Typical use:
//
//	engine := testutil.NewMockEngine("fake")
//	rec := testutil.NewMockModel()
//	engine.On("Load", mock.Anything, model.ModelBase).Return(rec, nil)
//	rec.OnTranscribe("hello", nil)
package testutil
