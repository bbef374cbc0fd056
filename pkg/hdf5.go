package summarystats

import (
	hdf5 "github.com/jmbenlloch/go-hdf5"
)

type EventDataHDF5 struct {
	evt_number int32
	n_sensors  int32
	first_row  int32
}

type RunInfoHDF5 struct {
	run_number int32
}

type SensorKeyHDF5 struct {
	evt_number int32
	string_id  int32
	sensor_id  int32
}

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) *hdf5.Group {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		panic(err)
	}
	return g
}

// createDoubleArray creates a float64 dataset of shape (unlimited, width)
// that grows one row per output sensor.
func createDoubleArray(group *hdf5.Group, name string, width int) *hdf5.Dataset {
	dims := []uint{0, uint(width)}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims), uint(width)}
	chunks := []uint{1024, uint(width)}

	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		panic(err)
	}

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		panic(err)
	}
	plist.SetChunk(chunks)
	plist.SetDeflate(configuration.CompressionLevel)

	dset, err := group.CreateDatasetWith(name, hdf5.T_NATIVE_DOUBLE, fileSpace, plist)
	if err != nil {
		panic(err)
	}
	return dset
}

func createTable(group *hdf5.Group, name string, datatype interface{}) *hdf5.Dataset {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		panic(err)
	}

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		panic(err)
	}
	chunks := []uint{32768}
	plist.SetChunk(chunks)
	plist.SetDeflate(configuration.CompressionLevel)

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		panic(err)
	}

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		panic(err)
	}
	return dset
}

func writeEntryToTable[T any](dataset *hdf5.Dataset, data T, rowCounter int) {
	array := []T{data}
	writeArrayToTable(dataset, &array, rowCounter)
}

func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, rowCounter int) {
	length := uint(len(*data))
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		panic(err)
	}

	// extend
	rowsInFile := uint(rowCounter)
	newsize := []uint{rowsInFile + length}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{rowsInFile}
	count := []uint{length}
	filespace.SelectHyperslab(start, nil, count, nil)

	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}

// writeDoubleRows appends nRows rows of the given width, flattened
// row-major into data, starting at rowCounter.
func writeDoubleRows(dataset *hdf5.Dataset, data *[]float64, rowCounter int, nRows int, width int) {
	newsize := []uint{uint(rowCounter + nRows), uint(width)}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{uint(rowCounter), 0}
	count := []uint{uint(nRows), uint(width)}
	filespace.SelectHyperslab(start, nil, count, nil)

	dataspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		panic(err)
	}

	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}
