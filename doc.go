// Package feedforward provides fully-connected feedforward networks of tanh neurons, trained one
// record at a time by backpropagation with momentum.
//
// # Creating Networks
//
// A Network is made from its layout: the number of neurons in each layer, from the input layer to
// the output layer. Every layer additionally has a bias neuron, which always outputs 1.
//
//	net, err := ff.New([]int{2, 3, 1}, initializers.Uniform(rand.New(rand.NewSource(seed))))
//	if err != nil {
//		return err
//	}
//
// For brevity, feedforward is abbreviated 'ff'. The initial weights are given by the RNG, which for
// Uniform is on the range (-1, 1).
//
// Networks can also be read from files, either with only their layout (".lay", random weights) or
// with their weights (".net"):
//
//	net, err := ff.OpenNetwork("xor.net", nil)
//
// # Training and Testing
//
// Training and testing are both done with Datasets, which are lists of Records. Each Record has
// inputs for the Network and the targets that the Network should give for them. Datasets are
// usually read from ".set" files with OpenDataset.
//
// A single pass over a Dataset is done with Train:
//
//	for epoch := 0; epoch < epochs; epoch++ {
//		if err := net.Train(ds, ff.DefaultTrainArgs()); err != nil {
//			return err
//		}
//	}
//
// TrainArgs holds the learning rate and momentum, as HyperParameters: they may change with the
// number of records the Network has been trained on. The subpackage hyperparams provides constant
// and stepped values.
//
// Evaluate gives the root mean square error of the Network over a Dataset, without changing it.
// Accuracy gives the fraction of records that the Network gets right, as decided by a CorrectFunc
// such as CorrectRound or CorrectHighest.
//
// Lower-level access is available through Propagate, Results and Backpropagate.
//
// # Errors
//
// All errors returned have an ErrorKind, given by KindOf, which remains available through any
// wrapping.
//
//	if ff.KindOf(err) == ff.IncompatibleVectorSize {
//		// ...
//	}
package feedforward
